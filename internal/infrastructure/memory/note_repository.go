package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/repairnotes-api/internal/domain"
	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
	"github.com/jhoicas/repairnotes-api/internal/domain/repository"
)

var _ repository.NoteRepository = (*NoteRepo)(nil)

// NoteRepo implementación en memoria de NoteRepository.
type NoteRepo struct {
	s *Store
}

// Create persiste una nota; el usuario asignado debe existir.
func (r *NoteRepo) Create(_ context.Context, note *entity.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[note.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	if r.titleTaken(note.TitleKey(), "") {
		return domain.ErrConflict
	}
	r.s.notes[note.ID] = cloneNote(note)
	return nil
}

// GetByID obtiene una nota por ID.
func (r *NoteRepo) GetByID(_ context.Context, id string) (*entity.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, ok := r.s.notes[id]
	if !ok {
		return nil, nil
	}
	return cloneNote(n), nil
}

// FindByTitle busca por título sin distinguir mayúsculas.
func (r *NoteRepo) FindByTitle(_ context.Context, title string) (*entity.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	key := entity.FoldKey(title)
	for _, n := range r.s.notes {
		if n.TitleKey() == key {
			return cloneNote(n), nil
		}
	}
	return nil, nil
}

// List todas las notas por fecha de creación.
func (r *NoteRepo) List(_ context.Context) ([]*entity.Note, error) {
	return r.filter(func(*entity.Note) bool { return true }), nil
}

// ListByUser notas asignadas a userID.
func (r *NoteRepo) ListByUser(_ context.Context, userID string) ([]*entity.Note, error) {
	return r.filter(func(n *entity.Note) bool { return n.UserID == userID }), nil
}

// Update reemplaza una nota existente.
func (r *NoteRepo) Update(_ context.Context, note *entity.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.notes[note.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.users[note.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	if r.titleTaken(note.TitleKey(), note.ID) {
		return domain.ErrConflict
	}
	r.s.notes[note.ID] = cloneNote(note)
	return nil
}

// Delete elimina una nota sin más comprobaciones.
func (r *NoteRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.notes, id)
	return nil
}

// ExistsForUser indica si userID tiene al menos una nota.
func (r *NoteRepo) ExistsForUser(_ context.Context, userID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, n := range r.s.notes {
		if n.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *NoteRepo) filter(keep func(*entity.Note) bool) []*entity.Note {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Note, 0, len(r.s.notes))
	for _, n := range r.s.notes {
		if keep(n) {
			list = append(list, cloneNote(n))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list
}

func (r *NoteRepo) titleTaken(key, exceptID string) bool {
	for id, n := range r.s.notes {
		if id != exceptID && n.TitleKey() == key {
			return true
		}
	}
	return false
}
