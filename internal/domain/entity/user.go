package entity

import "time"

// User representa un usuario del sistema (técnico, encargado o administrador).
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Roles        []Role // conjunto canónico (ver ParseRoles)
	Active       bool
	Avatar       string // URL absoluta; vacío = sin avatar
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UsernameKey clave de unicidad del username (insensible a mayúsculas).
func (u *User) UsernameKey() string {
	return FoldKey(u.Username)
}

// HasRole indica si el usuario tiene alguno de los roles dados.
func (u *User) HasRole(roles ...Role) bool {
	return HasAnyRole(RoleStrings(u.Roles), roles...)
}
