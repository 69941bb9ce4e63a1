package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/repairnotes-api/pkg/logger"
)

const (
	// HeaderRequestID header de correlación de cada petición.
	HeaderRequestID = "X-Request-Id"
	// LocalRequestID key de c.Locals con el id de la petición.
	LocalRequestID = "request_id"
)

// RequestLogger asigna un id por petición (o respeta el entrante) y registra
// método, ruta, origen, estado y latencia.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalRequestID, id)
		c.Set(HeaderRequestID, id)

		chainErr := c.Next()
		if chainErr != nil {
			// Resolver el código final antes de registrar.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		log.Info().
			Str("request_id", id).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("origin", c.Get(fiber.HeaderOrigin)).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Msg("request")
		return nil
	}
}

// GetRequestID devuelve el id de la petición (después de RequestLogger).
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}
