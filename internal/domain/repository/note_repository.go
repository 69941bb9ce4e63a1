package repository

import (
	"context"

	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
)

// NoteRepository define el puerto de persistencia para Note.
type NoteRepository interface {
	// Create persiste la nota; título duplicado => domain.ErrConflict.
	Create(ctx context.Context, note *entity.Note) error
	GetByID(ctx context.Context, id string) (*entity.Note, error)
	// FindByTitle busca por título sin distinguir mayúsculas.
	FindByTitle(ctx context.Context, title string) (*entity.Note, error)
	List(ctx context.Context) ([]*entity.Note, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Note, error)
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id string) error
	ExistsForUser(ctx context.Context, userID string) (bool, error)
}
