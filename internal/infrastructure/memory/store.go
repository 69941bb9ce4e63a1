// Package memory implementa los puertos de persistencia en memoria.
// Respeta las mismas restricciones que el esquema PostgreSQL (claves únicas
// sin distinguir mayúsculas, una sesión por usuario, notas que bloquean el borrado
// de su usuario) y se usa en los tests de aplicación y HTTP.
package memory

import (
	"sync"

	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*entity.User
	notes    map[string]*entity.Note
	sessions map[string]*entity.Session // por UserID
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]*entity.User),
		notes:    make(map[string]*entity.Note),
		sessions: make(map[string]*entity.Session),
	}
}

// Users repositorio de usuarios sobre el store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Notes repositorio de notas sobre el store.
func (s *Store) Notes() *NoteRepo { return &NoteRepo{s: s} }

// Sessions repositorio de sesiones sobre el store.
func (s *Store) Sessions() *SessionRepo { return &SessionRepo{s: s} }

// Analytics consultas de analítica sobre el store.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s: s} }

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Roles = append([]entity.Role(nil), u.Roles...)
	return &c
}

func cloneNote(n *entity.Note) *entity.Note {
	c := *n
	return &c
}

func cloneSession(s *entity.Session) *entity.Session {
	c := *s
	return &c
}
