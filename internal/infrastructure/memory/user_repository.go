package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/repairnotes-api/internal/domain"
	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
	"github.com/jhoicas/repairnotes-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	s *Store
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.usernameTaken(user.UsernameKey(), "") {
		return domain.ErrConflict
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

// FindByUsername busca por username sin distinguir mayúsculas.
func (r *UserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	key := entity.FoldKey(username)
	for _, u := range r.s.users {
		if u.UsernameKey() == key {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// List lista usuarios por fecha de creación.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		list = append(list, cloneUser(u))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

// Update actualiza un usuario.
func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.usernameTaken(user.UsernameKey(), user.ID) {
		return domain.ErrConflict
	}
	r.s.users[user.ID] = cloneUser(user)
	if sess, ok := r.s.sessions[user.ID]; ok {
		sess.Username = user.Username
	}
	return nil
}

// Delete elimina un usuario; falla si tiene notas asignadas.
func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.notes {
		if n.UserID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.users, id)
	delete(r.s.sessions, id)
	return nil
}

func (r *UserRepo) usernameTaken(key, exceptID string) bool {
	for id, u := range r.s.users {
		if id != exceptID && u.UsernameKey() == key {
			return true
		}
	}
	return false
}
