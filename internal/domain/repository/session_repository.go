package repository

import (
	"context"
	"time"

	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
)

// SessionRepository registro de sesiones activas (una por usuario).
type SessionRepository interface {
	// CreateIfAbsent inserta la sesión sólo si el usuario no tiene otra; created indica si se insertó.
	CreateIfAbsent(ctx context.Context, s *entity.Session) (created bool, err error)
	DeleteByUsername(ctx context.Context, username string) error
	List(ctx context.Context) ([]*entity.Session, error)
	// DeleteOlderThan purga sesiones con loginTime anterior a cutoff y devuelve cuántas borró.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
