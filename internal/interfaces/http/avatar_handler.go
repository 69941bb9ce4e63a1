package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/repairnotes-api/internal/application/dto"
)

// avatarOpener lee avatares guardados fuera del disco local (bucket S3/MinIO).
type avatarOpener interface {
	Open(ctx context.Context, name string) (*dto.AvatarFile, error)
}

// AvatarHandler sirve /uploads/:name desde el almacenamiento de objetos.
type AvatarHandler struct {
	files avatarOpener
}

// NewAvatarHandler construye el handler.
func NewAvatarHandler(files avatarOpener) *AvatarHandler {
	return &AvatarHandler{files: files}
}

// Serve GET /uploads/:name
// @Summary      Avatar de usuario
// @Tags         users
// @Produce      octet-stream
// @Param        name  path  string  true  "nombre del archivo"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /uploads/{name} [get]
func (h *AvatarHandler) Serve(c *fiber.Ctx) error {
	f, err := h.files.Open(c.Context(), c.Params("name"))
	if err != nil {
		return err
	}
	if f == nil {
		return NotFound(c)
	}
	if f.ContentType != "" {
		c.Set(fiber.HeaderContentType, f.ContentType)
	}
	size := int(f.Size)
	if f.Size <= 0 {
		size = -1
	}
	// fasthttp cierra Content al terminar de escribir la respuesta.
	return c.SendStream(f.Content, size)
}
