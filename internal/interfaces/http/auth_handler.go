package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/repairnotes-api/internal/application/auth"
	"github.com/jhoicas/repairnotes-api/internal/application/dto"
)

// RefreshCookieName nombre de la cookie httpOnly que lleva el refresh token.
const RefreshCookieName = "jwt"

// CookieConfig atributos de la cookie de refresco.
type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

// AuthHandler maneja login, refresh y logout.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cookie CookieConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /auth [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}

	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    out.RefreshToken,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteNoneMode,
		MaxAge:   int(h.cookie.MaxAge / time.Second),
	})
	return c.JSON(dto.TokenResponse{AccessToken: out.AccessToken})
}

// Refresh godoc
// @Summary      Renovar token de acceso
// @Description  Usa la cookie "jwt" para emitir un nuevo token de acceso con los roles actuales.
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.TokenResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /auth/refresh [get]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	out, err := h.uc.Refresh(c.Context(), c.Cookies(RefreshCookieName))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Borra la sesión registrada y la cookie. Sin cookie responde 204.
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.MessageResponse
// @Success      204
// @Router       /auth/logout [get]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(RefreshCookieName)
	if token == "" {
		return c.SendStatus(fiber.StatusNoContent)
	}
	if err := h.uc.Logout(c.Context(), token); err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteNoneMode,
		Expires:  time.Unix(0, 0),
	})
	return c.JSON(dto.MessageResponse{Message: "Cookie Cleared, Session Removed"})
}
