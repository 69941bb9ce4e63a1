package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
	"github.com/jhoicas/repairnotes-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación en memoria de SessionRepository.
type SessionRepo struct {
	s *Store
}

// CreateIfAbsent inserta la sesión si el usuario no tiene una.
func (r *SessionRepo) CreateIfAbsent(_ context.Context, sess *entity.Session) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sessions[sess.UserID]; ok {
		return false, nil
	}
	r.s.sessions[sess.UserID] = cloneSession(sess)
	return true, nil
}

// DeleteByUsername elimina la sesión del usuario (si existe).
func (r *SessionRepo) DeleteByUsername(_ context.Context, username string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for userID, sess := range r.s.sessions {
		if sess.Username == username {
			delete(r.s.sessions, userID)
		}
	}
	return nil
}

// List sesiones por hora de login.
func (r *SessionRepo) List(_ context.Context) ([]*entity.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Session, 0, len(r.s.sessions))
	for _, sess := range r.s.sessions {
		list = append(list, cloneSession(sess))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].LoginTime.Before(list[j].LoginTime) })
	return list, nil
}

// DeleteOlderThan purga sesiones anteriores a cutoff.
func (r *SessionRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for userID, sess := range r.s.sessions {
		if sess.LoginTime.Before(cutoff) {
			delete(r.s.sessions, userID)
			n++
		}
	}
	return n, nil
}
