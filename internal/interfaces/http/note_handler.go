package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/repairnotes-api/internal/application/dto"
	"github.com/jhoicas/repairnotes-api/internal/application/usecase"
)

// NoteHandler maneja el ciclo de vida de las notas de reparación.
type NoteHandler struct {
	uc *usecase.NoteUseCase
}

// NewNoteHandler construye el handler.
func NewNoteHandler(uc *usecase.NoteUseCase) *NoteHandler {
	return &NoteHandler{uc: uc}
}

// List godoc
// @Summary      Listar notas
// @Description  Admin y Manager ven todas; el resto sólo las asignadas a sí mismos.
// @Tags         notes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.NoteResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /notes [get]
func (h *NoteHandler) List(c *fiber.Ctx) error {
	notes, err := h.uc.List(c.Context(), GetUsername(c), GetRoles(c))
	if err != nil {
		return err
	}
	return c.JSON(notes)
}

// Create godoc
// @Summary      Crear nota
// @Tags         notes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNoteRequest  true  "user, title, text"
// @Success      201  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /notes [post]
func (h *NoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNoteRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.uc.Create(c.Context(), in); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Note Created Successfully"})
}

// Update godoc
// @Summary      Actualizar nota
// @Description  Reemplaza user, title, text y completed. Al pasar a completada se fija repairTime.
// @Tags         notes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateNoteRequest  true  "id, user, title, text, completed"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /notes [patch]
func (h *NoteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateNoteRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	msg, err := h.uc.Update(c.Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

// Delete godoc
// @Summary      Eliminar nota
// @Tags         notes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeleteNoteRequest  true  "id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /notes [delete]
func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	var in dto.DeleteNoteRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	msg, err := h.uc.Delete(c.Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}
