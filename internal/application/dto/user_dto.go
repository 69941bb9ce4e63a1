package dto

import (
	"io"
	"time"
)

// AvatarUpload archivo de avatar recibido en multipart (campo "avatar").
type AvatarUpload struct {
	Filename string
	Content  io.Reader
}

// AvatarFile avatar leído del almacenamiento de objetos para servirlo en /uploads. Content debe cerrarse.
type AvatarFile struct {
	Content     io.ReadCloser
	ContentType string
	Size        int64
}

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// Roles admite arreglo, arreglo JSON en string, lista separada por comas o un único rol.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Roles    any    `json:"roles"`

	// Los completa el handler, no el cliente.
	Avatar  *AvatarUpload `json:"-"`
	BaseURL string        `json:"-"`
}

// UpdateUserRequest entrada de PATCH /users. Active admite bool o "true"/"false";
// DeleteAvatar admite true o "true".
type UpdateUserRequest struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	Roles        any    `json:"roles"`
	Active       any    `json:"active"`
	DeleteAvatar any    `json:"deleteAvatar"`

	Avatar  *AvatarUpload `json:"-"`
	BaseURL string        `json:"-"`
}

// DeleteUserRequest entrada de DELETE /users.
type DeleteUserRequest struct {
	ID string `json:"id" form:"id"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	Active    bool      `json:"active"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
