package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/repairnotes-api/internal/application/dto"
	"github.com/jhoicas/repairnotes-api/internal/application/usecase"
)

// avatarField campo multipart con la imagen del avatar.
const avatarField = "avatar"

// UserHandler CRUD de usuarios. Create y Update aceptan JSON o multipart/form-data (con avatar).
type UserHandler struct {
	uc            *usecase.UserUseCase
	publicBaseURL string
}

// NewUserHandler construye el handler. publicBaseURL prefija las URLs de avatar;
// vacío = URL base de la petición.
func NewUserHandler(uc *usecase.UserUseCase, publicBaseURL string) *UserHandler {
	return &UserHandler{uc: uc, publicBaseURL: publicBaseURL}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.uc.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "username, password, roles"
// @Success      201  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	closeAvatar, err := h.bind(c, &in, func(f formFields) {
		in.Username = f.value("username")
		in.Password = f.value("password")
		in.Roles = f.roles()
	}, &in.Avatar)
	if err != nil {
		return err
	}
	defer closeAvatar()
	in.BaseURL = h.baseURL(c)

	msg, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: msg})
}

// Update godoc
// @Summary      Actualizar usuario
// @Description  Roles, active, password y avatar son opcionales. deleteAvatar=true borra el avatar.
// @Tags         users
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body  dto.UpdateUserRequest  true  "id, username, ..."
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /users [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	closeAvatar, err := h.bind(c, &in, func(f formFields) {
		in.ID = f.value("id")
		in.Username = f.value("username")
		in.Password = f.value("password")
		in.Roles = f.roles()
		in.Active = f.value("active")
		in.DeleteAvatar = f.value("deleteAvatar")
	}, &in.Avatar)
	if err != nil {
		return err
	}
	defer closeAvatar()
	in.BaseURL = h.baseURL(c)

	msg, err := h.uc.Update(c.Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

// Delete godoc
// @Summary      Eliminar usuario
// @Description  Falla si el usuario tiene notas asignadas.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeleteUserRequest  true  "id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /users [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	var in dto.DeleteUserRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	msg, err := h.uc.Delete(c.Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

// ── binding ───────────────────────────────────────────────────────────────────

// formFields valores de texto de un multipart/form-data.
type formFields map[string][]string

func (f formFields) value(key string) string {
	if v := f[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// roles: varios campos "roles" => lista; uno solo => string (JSON, CSV o rol único).
func (f formFields) roles() any {
	switch v := f["roles"]; len(v) {
	case 0:
		return nil
	case 1:
		return v[0]
	default:
		return v
	}
}

// bind rellena la entrada desde JSON o multipart. En multipart abre el avatar (si viene)
// y devuelve la función que lo cierra.
func (h *UserHandler) bind(c *fiber.Ctx, jsonDst any, fromForm func(formFields), avatar **dto.AvatarUpload) (func(), error) {
	noop := func() {}
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return noop, parseBody(c, jsonDst)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return noop, fiber.NewError(fiber.StatusBadRequest, "Invalid multipart form")
	}
	fromForm(formFields(form.Value))

	files := form.File[avatarField]
	if len(files) == 0 {
		return noop, nil
	}
	f, err := files[0].Open()
	if err != nil {
		return noop, fiber.NewError(fiber.StatusBadRequest, "Invalid avatar file")
	}
	*avatar = &dto.AvatarUpload{Filename: files[0].Filename, Content: f}
	return func() { _ = f.Close() }, nil
}

func (h *UserHandler) baseURL(c *fiber.Ctx) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}
	return c.BaseURL()
}
