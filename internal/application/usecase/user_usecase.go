package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/repairnotes-api/internal/application/dto"
	"github.com/jhoicas/repairnotes-api/internal/domain"
	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
	"github.com/jhoicas/repairnotes-api/internal/domain/repository"
)

// AvatarStore almacenamiento de archivos de avatar.
type AvatarStore interface {
	// Save guarda el contenido y devuelve el nombre de archivo asignado.
	Save(ctx context.Context, originalName string, content io.Reader) (filename string, err error)
	// Remove borra el archivo referenciado por la URL; URLs ajenas al store se ignoran.
	Remove(ctx context.Context, avatarURL string) error
}

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo          repository.UserRepository
	noteRepo      repository.NoteRepository
	avatars       AvatarStore
	defaultAvatar string
	now           func() time.Time
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia y almacenamiento.
func NewUserUseCase(
	repo repository.UserRepository,
	noteRepo repository.NoteRepository,
	avatars AvatarStore,
	defaultAvatar string,
	now func() time.Time,
) *UserUseCase {
	if now == nil {
		now = time.Now
	}
	return &UserUseCase{repo: repo, noteRepo: noteRepo, avatars: avatars, defaultAvatar: defaultAvatar, now: now}
}

// List lista todos los usuarios sin password.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("users.List: %w", err)
	}
	if len(users) == 0 {
		return nil, domain.Invalid("No Users Found")
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Create valida, hashea el password y persiste un usuario nuevo.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (string, error) {
	switch {
	case in.Username == "" && in.Password == "":
		return "", domain.Invalid("Username & Password are Required")
	case in.Username == "":
		return "", domain.Invalid("Username is Required")
	case in.Password == "":
		return "", domain.Invalid("Password is Required")
	}

	dup, err := uc.repo.FindByUsername(ctx, in.Username)
	if err != nil {
		return "", fmt.Errorf("users.Create: %w", err)
	}
	if dup != nil {
		return "", duplicateUser(in.Username)
	}
	roles, err := entity.ParseRoles(in.Roles)
	if err != nil {
		return "", err
	}
	if len(roles) == 0 {
		roles = entity.DefaultRoles()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("users.Create: hash: %w", err)
	}

	avatar := uc.defaultAvatar
	if in.Avatar != nil {
		if avatar, err = uc.saveAvatar(ctx, in.Avatar, in.BaseURL); err != nil {
			return "", err
		}
	}

	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Roles:        roles,
		Active:       true,
		Avatar:       avatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return "", duplicateUser(in.Username)
		}
		return "", fmt.Errorf("users.Create: %w", err)
	}
	return fmt.Sprintf("User %s Created Successfully", user.Username), nil
}

// Update modifica username y, si vienen, roles, active, password y avatar.
func (uc *UserUseCase) Update(ctx context.Context, in dto.UpdateUserRequest) (string, error) {
	if in.ID == "" {
		return "", domain.Invalid("User ID is Required to Perform this Action")
	}
	if in.Username == "" {
		return "", domain.Invalid("Username is Required")
	}
	user, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return "", fmt.Errorf("users.Update: %w", err)
	}
	if user == nil {
		return "", domain.Invalid(fmt.Sprintf("User %s Not Found", in.Username))
	}
	dup, err := uc.repo.FindByUsername(ctx, in.Username)
	if err != nil {
		return "", fmt.Errorf("users.Update: %w", err)
	}
	if dup != nil && dup.ID != user.ID {
		return "", duplicateUser(in.Username)
	}

	roles, err := entity.ParseRoles(in.Roles)
	if err != nil {
		return "", err
	}
	active, activeSet, err := parseFlag(in.Active)
	if err != nil {
		return "", err
	}
	deleteAvatar, _, err := parseFlag(in.DeleteAvatar)
	if err != nil {
		return "", err
	}

	// El archivo anterior sólo se borra cuando el store ya no lo referencia.
	previousAvatar := user.Avatar
	if deleteAvatar {
		user.Avatar = ""
	}
	if len(roles) > 0 {
		user.Roles = roles
	}
	user.Username = in.Username
	if activeSet {
		user.Active = active
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("users.Update: hash: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	newAvatar := ""
	if in.Avatar != nil {
		if newAvatar, err = uc.saveAvatar(ctx, in.Avatar, in.BaseURL); err != nil {
			return "", err
		}
		user.Avatar = newAvatar
	}
	user.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, user); err != nil {
		if newAvatar != "" {
			_ = uc.removeAvatar(ctx, newAvatar)
		}
		if errors.Is(err, domain.ErrConflict) {
			return "", duplicateUser(in.Username)
		}
		return "", fmt.Errorf("users.Update: %w", err)
	}
	// Con el cambio ya confirmado, un archivo que no se pudo borrar queda huérfano pero no referenciado.
	if previousAvatar != user.Avatar {
		_ = uc.removeAvatar(ctx, previousAvatar)
	}
	return fmt.Sprintf("%s has been Successfully Updated !", user.Username), nil
}

// Delete elimina un usuario sin notas asignadas.
func (uc *UserUseCase) Delete(ctx context.Context, in dto.DeleteUserRequest) (string, error) {
	if in.ID == "" {
		return "", domain.Invalid("User ID is Required to Perform this Action!")
	}
	hasNotes, err := uc.noteRepo.ExistsForUser(ctx, in.ID)
	if err != nil {
		return "", fmt.Errorf("users.Delete: %w", err)
	}
	if hasNotes {
		return "", domain.Invalid("User has Assigned Notes")
	}
	user, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return "", fmt.Errorf("users.Delete: %w", err)
	}
	if user == nil {
		return "", domain.Invalid("User Not Found")
	}
	if err := uc.repo.Delete(ctx, user.ID); err != nil {
		// Una nota asignada entre la comprobación y el borrado la rechaza la FK.
		if errors.Is(err, domain.ErrConflict) {
			return "", domain.Invalid("User has Assigned Notes")
		}
		return "", fmt.Errorf("users.Delete: %w", err)
	}
	return fmt.Sprintf("Username %s with ID %s has been Deleted !", user.Username, user.ID), nil
}

func (uc *UserUseCase) saveAvatar(ctx context.Context, up *dto.AvatarUpload, baseURL string) (string, error) {
	filename, err := uc.avatars.Save(ctx, up.Filename, up.Content)
	if err != nil {
		return "", fmt.Errorf("users: guardar avatar: %w", err)
	}
	return strings.TrimRight(baseURL, "/") + "/uploads/" + filename, nil
}

// removeAvatar nunca borra el avatar por defecto, que comparten todos los usuarios.
func (uc *UserUseCase) removeAvatar(ctx context.Context, avatarURL string) error {
	if avatarURL == "" || avatarURL == uc.defaultAvatar {
		return nil
	}
	if err := uc.avatars.Remove(ctx, avatarURL); err != nil {
		return fmt.Errorf("users: borrar avatar: %w", err)
	}
	return nil
}

func duplicateUser(username string) error {
	return domain.Conflict(fmt.Sprintf("User %s Already Exists", username))
}

// parseFlag interpreta un booleano que puede llegar como bool o como string de formulario.
// set=false si el campo no vino (nil o "").
func parseFlag(v any) (value, set bool, err error) {
	switch t := v.(type) {
	case nil:
		return false, false, nil
	case bool:
		return t, true, nil
	case string:
		if t == "" {
			return false, false, nil
		}
		return strings.EqualFold(strings.TrimSpace(t), "true"), true, nil
	default:
		return false, false, domain.Invalid("Unknown Error")
	}
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Roles:     entity.RoleStrings(u.Roles),
		Active:    u.Active,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
