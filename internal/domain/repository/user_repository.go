package repository

import (
	"context"

	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) cuando no hay resultado.
type UserRepository interface {
	// Create persiste el usuario; username duplicado (sin distinguir mayúsculas) => domain.ErrConflict.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// FindByUsername busca por username sin distinguir mayúsculas.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// Delete elimina el usuario; si tiene notas asignadas => domain.ErrConflict.
	Delete(ctx context.Context, id string) error
}
