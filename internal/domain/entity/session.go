package entity

import "time"

// Session registro de login activo. Como máximo una por usuario; no se usa para autorizar.
type Session struct {
	ID        string
	UserID    string
	Username  string
	LoginTime time.Time
}
