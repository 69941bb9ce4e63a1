package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/repairnotes-api/internal/domain"
	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
	"github.com/jhoicas/repairnotes-api/internal/domain/repository"
)

var _ repository.NoteRepository = (*NoteRepo)(nil)

const noteColumns = `id, user_id, title, text, completed, repair_time, created_at, updated_at`

// NoteRepo implementación del puerto NoteRepository sobre PostgreSQL.
type NoteRepo struct {
	q Querier
}

// NewNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNoteRepository(q Querier) *NoteRepo {
	return &NoteRepo{q: q}
}

// Create persiste una nota nueva.
func (r *NoteRepo) Create(ctx context.Context, note *entity.Note) error {
	const query = `
		INSERT INTO notes (id, user_id, title, title_key, text, completed, repair_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		note.ID, note.UserID, note.Title, note.TitleKey(), note.Text, note.Completed, note.RepairTime,
		note.CreatedAt, note.UpdatedAt,
	)
	return mapNoteWriteError("insert note", err)
}

// GetByID obtiene una nota por ID.
func (r *NoteRepo) GetByID(ctx context.Context, id string) (*entity.Note, error) {
	return r.findOne(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id)
}

// FindByTitle busca por la clave normalizada del título.
func (r *NoteRepo) FindByTitle(ctx context.Context, title string) (*entity.Note, error) {
	return r.findOne(ctx, `SELECT `+noteColumns+` FROM notes WHERE title_key = $1`, entity.FoldKey(title))
}

// List todas las notas por fecha de creación.
func (r *NoteRepo) List(ctx context.Context) ([]*entity.Note, error) {
	return r.list(ctx, `SELECT `+noteColumns+` FROM notes ORDER BY created_at, id`)
}

// ListByUser notas asignadas a un usuario.
func (r *NoteRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Note, error) {
	return r.list(ctx, `SELECT `+noteColumns+` FROM notes WHERE user_id = $1 ORDER BY created_at, id`, userID)
}

// Update reescribe la nota completa.
func (r *NoteRepo) Update(ctx context.Context, note *entity.Note) error {
	const query = `
		UPDATE notes SET user_id = $2, title = $3, title_key = $4, text = $5, completed = $6,
		       repair_time = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		note.ID, note.UserID, note.Title, note.TitleKey(), note.Text, note.Completed, note.RepairTime, note.UpdatedAt,
	)
	if err != nil {
		return mapNoteWriteError("update note", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una nota.
func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// ExistsForUser indica si el usuario tiene alguna nota asignada.
func (r *NoteRepo) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM notes WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists notes for user: %w", err)
	}
	return exists, nil
}

func (r *NoteRepo) findOne(ctx context.Context, query string, arg any) (*entity.Note, error) {
	n, err := scanNote(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

func (r *NoteRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Note, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func scanNote(row pgx.Row) (*entity.Note, error) {
	var n entity.Note
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Text, &n.Completed, &n.RepairTime, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

func mapNoteWriteError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrConflict
	case isForeignKeyViolation(err):
		return domain.ErrUserNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
