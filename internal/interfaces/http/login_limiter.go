package http

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/repairnotes-api/internal/application/dto"
	"github.com/jhoicas/repairnotes-api/pkg/logger"
)

// loginThrottle contrato mínimo del limitador (lo implementa *cache.LoginThrottle).
type loginThrottle interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// LoginLimiter limita los intentos de login por IP. Sin throttle (Redis desactivado) no limita.
// Si Redis falla se deja pasar la petición y se registra el error.
func LoginLimiter(throttle loginThrottle, log *logger.Logger) fiber.Handler {
	if throttle == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return func(c *fiber.Ctx) error {
		allowed, retry, err := throttle.Allow(c.Context(), c.IP())
		if err != nil {
			log.Warn().Err(err).Str("ip", c.IP()).Msg("login throttle no disponible")
			return c.Next()
		}
		if !allowed {
			secs := int(math.Ceil(retry.Seconds()))
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Message: "Too many login attempts from this IP, please try again after a 60 second pause",
			})
		}
		return c.Next()
	}
}
