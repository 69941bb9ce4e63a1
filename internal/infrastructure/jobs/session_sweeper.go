// Package jobs tareas programadas del servicio.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/repairnotes-api/internal/domain/repository"
)

// SessionSweeper purga las sesiones cuyo refresh token ya expiró.
type SessionSweeper struct {
	cron     *cron.Cron
	sessions repository.SessionRepository
	maxAge   time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewSessionSweeper maxAge = vida del refresh token.
func NewSessionSweeper(sessions repository.SessionRepository, maxAge time.Duration, log zerolog.Logger) *SessionSweeper {
	return &SessionSweeper{
		cron:     cron.New(),
		sessions: sessions,
		maxAge:   maxAge,
		now:      time.Now,
		log:      log,
	}
}

// Start programa el barrido. schedule vacío no programa nada.
func (s *SessionSweeper) Start(schedule string) error {
	if schedule == "" {
		return nil
	}
	if _, err := s.cron.AddFunc(schedule, func() { _, _ = s.Sweep(context.Background()) }); err != nil {
		return fmt.Errorf("jobs: programar barrido %q: %w", schedule, err)
	}
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine el barrido en curso.
func (s *SessionSweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep borra las sesiones con loginTime anterior a now - maxAge.
func (s *SessionSweeper) Sweep(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.maxAge)
	n, err := s.sessions.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.log.Error().Err(err).Msg("session sweep failed")
		return 0, err
	}
	if n > 0 {
		s.log.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("sessions swept")
	}
	return n, nil
}
