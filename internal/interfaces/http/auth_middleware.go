package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/repairnotes-api/internal/application/dto"
	"github.com/jhoicas/repairnotes-api/pkg/jwt"
)

// Locals keys para username y roles en Fiber.
const (
	LocalUsername = "username"
	LocalRoles    = "roles"
)

// accessVerifier lo implementa *jwt.Issuer.
type accessVerifier interface {
	VerifyAccess(token string) (*jwt.AccessClaims, error)
}

// AuthMiddleware valida el Bearer Token de acceso y carga username y roles en c.Locals.
// Sin header o con formato incorrecto => 401; token inválido o expirado => 403.
func AuthMiddleware(verifier accessVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Unauthorized"})
		}
		claims, err := verifier.VerifyAccess(strings.TrimSpace(parts[1]))
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "Forbidden"})
		}
		c.Locals(LocalUsername, claims.UserInfo.Username)
		c.Locals(LocalRoles, claims.UserInfo.Roles)
		return c.Next()
	}
}

// GetUsername devuelve el username del token (después del middleware de auth).
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}

// GetRoles devuelve los roles del token (después del middleware de auth).
func GetRoles(c *fiber.Ctx) []string {
	roles, _ := c.Locals(LocalRoles).([]string)
	return roles
}
