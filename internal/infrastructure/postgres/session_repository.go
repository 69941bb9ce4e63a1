package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
	"github.com/jhoicas/repairnotes-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo registro de sesiones sobre PostgreSQL (una fila por usuario).
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// CreateIfAbsent inserta la sesión; si el usuario ya tiene una, no hace nada.
func (r *SessionRepo) CreateIfAbsent(ctx context.Context, s *entity.Session) (bool, error) {
	const query = `
		INSERT INTO sessions (id, user_id, username, login_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING`
	tag, err := r.q.Exec(ctx, query, s.ID, s.UserID, s.Username, s.LoginTime)
	if err != nil {
		return false, fmt.Errorf("insert session: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteByUsername borra la sesión del usuario, si existe.
func (r *SessionRepo) DeleteByUsername(ctx context.Context, username string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sessions WHERE username = $1`, username); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// List sesiones por hora de login.
func (r *SessionRepo) List(ctx context.Context) ([]*entity.Session, error) {
	rows, err := r.q.Query(ctx, `SELECT id, user_id, username, login_time FROM sessions ORDER BY login_time, username`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Session
	for rows.Next() {
		var s entity.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.Username, &s.LoginTime); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// DeleteOlderThan purga sesiones anteriores a cutoff.
func (r *SessionRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM sessions WHERE login_time < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
