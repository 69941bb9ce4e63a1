package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
	"github.com/jhoicas/repairnotes-api/internal/infrastructure/memory"
)

func TestSweep_BorraSoloSesionesVencidas(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	for id, username := range map[string]string{"u1": "dave", "u2": "ana"} {
		require.NoError(t, store.Users().Create(ctx, &entity.User{ID: id, Username: username, Active: true}))
	}
	_, _ = store.Sessions().CreateIfAbsent(ctx, &entity.Session{ID: "s1", UserID: "u1", Username: "dave", LoginTime: now.Add(-8 * 24 * time.Hour)})
	_, _ = store.Sessions().CreateIfAbsent(ctx, &entity.Session{ID: "s2", UserID: "u2", Username: "ana", LoginTime: now.Add(-time.Hour)})

	s := NewSessionSweeper(store.Sessions(), 7*24*time.Hour, zerolog.Nop())
	s.now = func() time.Time { return now }

	n, err := s.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	left, _ := store.Sessions().List(ctx)
	require.Len(t, left, 1)
	assert.Equal(t, "ana", left[0].Username)
}

func TestStart_ScheduleInvalido(t *testing.T) {
	s := NewSessionSweeper(memory.NewStore().Sessions(), time.Hour, zerolog.Nop())
	assert.Error(t, s.Start("no es cron"))
	assert.NoError(t, s.Start(""))
}
