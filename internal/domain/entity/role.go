package entity

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/repairnotes-api/internal/domain"
)

// Role rol de un usuario.
type Role string

// Roles válidos para User. El orden de declaración es el orden canónico.
const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

var roleRank = map[Role]int{
	RoleAdmin:    0,
	RoleManager:  1,
	RoleEmployee: 2,
}

// DefaultRoles roles de un usuario creado sin roles explícitos.
func DefaultRoles() []Role { return []Role{RoleEmployee} }

// ParseRole reconoce un nombre de rol sin distinguir mayúsculas.
func ParseRole(name string) (Role, error) {
	name = strings.TrimSpace(name)
	for r := range roleRank {
		if strings.EqualFold(string(r), name) {
			return r, nil
		}
	}
	return "", domain.Invalid(fmt.Sprintf("Invalid Role %s", name))
}

// ParseRoles normaliza roles recibidos por un canal poco tipado (JSON o multipart):
//   - []string / []any
//   - string con un arreglo JSON: `["Admin","Employee"]`
//   - string separado por comas: "Admin, Employee"
//   - un único rol: "Manager"
//
// Devuelve el conjunto sin duplicados en orden canónico. nil o vacío => (nil, nil):
// el llamador decide el valor por defecto. Un nombre desconocido => ErrInvalidInput.
func ParseRoles(v any) ([]Role, error) {
	var names []string
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []Role:
		for _, r := range t {
			names = append(names, string(r))
		}
	case []string:
		names = t
	case []any:
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, domain.Invalid(fmt.Sprintf("Invalid Role %v", item))
			}
			names = append(names, s)
		}
	case json.RawMessage:
		return parseRawRoles(t)
	case string:
		names = splitRoleString(t)
	default:
		return nil, domain.Invalid(fmt.Sprintf("Invalid Role %v", t))
	}
	return canonicalRoles(names)
}

// parseRawRoles interpreta el campo "roles" de un cuerpo JSON (arreglo o string).
func parseRawRoles(raw json.RawMessage) ([]Role, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, domain.Invalid("Invalid Role " + trimmed)
	}
	return ParseRoles(decoded)
}

func splitRoleString(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(s), &arr); err == nil {
			return arr
		}
	}
	if strings.Contains(s, ",") {
		return strings.Split(s, ",")
	}
	return []string{s}
}

func canonicalRoles(names []string) ([]Role, error) {
	seen := make(map[Role]bool, len(names))
	var out []Role
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		r, err := ParseRole(n)
		if err != nil {
			return nil, err
		}
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return roleRank[out[i]] < roleRank[out[j]] })
	return out, nil
}

// RoleStrings convierte roles a []string (claims del token, JSON).
func RoleStrings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// HasAnyRole indica si roles contiene alguno de want.
func HasAnyRole(roles []string, want ...Role) bool {
	for _, r := range roles {
		for _, w := range want {
			if r == string(w) {
				return true
			}
		}
	}
	return false
}
