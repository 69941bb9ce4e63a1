package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/repairnotes-api/internal/application/dto"
	"github.com/jhoicas/repairnotes-api/internal/domain"
	"github.com/jhoicas/repairnotes-api/pkg/logger"
)

// ErrorHandler traduce los errores devueltos por los handlers a respuestas JSON {message}.
// Los errores de dominio conservan su mensaje; cualquier otro se registra y responde 500.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Message: fe.Message})
		}

		if status, ok := statusFor(err); ok {
			return c.Status(status).JSON(dto.ErrorResponse{Message: domain.Message(err, err.Error())})
		}

		log.Error().
			Err(err).
			Str("request_id", GetRequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("origin", c.Get(fiber.HeaderOrigin)).
			Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Internal Server Error"})
	}
}

// statusFor código HTTP de un error de dominio; ok=false si no es de dominio.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, true
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusUnauthorized, true
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, true
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, true
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, true
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, true
	default:
		return 0, false
	}
}

// NotFound responde a las rutas no registradas.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "404 : Page Not Found"})
}

// parseBody decodifica el cuerpo en dst. Un cuerpo vacío deja dst en cero y los campos
// faltantes los informa el caso de uso; un cuerpo ilegible => 400.
func parseBody(c *fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid Request Body")
	}
	return nil
}
