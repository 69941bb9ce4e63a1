package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/repairnotes-api/internal/application/dto"
	"github.com/jhoicas/repairnotes-api/internal/domain"
	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
	"github.com/jhoicas/repairnotes-api/internal/domain/repository"
)

// enrichConcurrency máximo de búsquedas de usuario en paralelo al listar notas.
const enrichConcurrency = 8

// NoteUseCase aplica reglas de negocio para notas de reparación.
type NoteUseCase struct {
	noteRepo repository.NoteRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewNoteUseCase construye el caso de uso. now nil = time.Now.
func NewNoteUseCase(noteRepo repository.NoteRepository, userRepo repository.UserRepository, now func() time.Time) *NoteUseCase {
	if now == nil {
		now = time.Now
	}
	return &NoteUseCase{noteRepo: noteRepo, userRepo: userRepo, now: now}
}

// List devuelve las notas visibles para el usuario autenticado, con username y avatar
// del asignado. Admin y Manager ven todas; el resto sólo las suyas.
func (uc *NoteUseCase) List(ctx context.Context, username string, roles []string) ([]dto.NoteResponse, error) {
	var (
		notes []*entity.Note
		err   error
	)
	if entity.HasAnyRole(roles, entity.RoleAdmin, entity.RoleManager) {
		notes, err = uc.noteRepo.List(ctx)
	} else {
		user, ferr := uc.userRepo.FindByUsername(ctx, username)
		if ferr != nil {
			return nil, fmt.Errorf("notes.List: %w", ferr)
		}
		if user == nil {
			return nil, domain.NotFound("User Not Found")
		}
		notes, err = uc.noteRepo.ListByUser(ctx, user.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("notes.List: %w", err)
	}
	return uc.withAssignees(ctx, notes)
}

// withAssignees resuelve en paralelo el usuario de cada nota. Un fallo en cualquiera
// de las búsquedas hace fallar toda la respuesta.
func (uc *NoteUseCase) withAssignees(ctx context.Context, notes []*entity.Note) ([]dto.NoteResponse, error) {
	out := make([]dto.NoteResponse, len(notes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i, n := range notes {
		g.Go(func() error {
			user, err := uc.userRepo.GetByID(gctx, n.UserID)
			if err != nil {
				return err
			}
			if user == nil {
				return fmt.Errorf("usuario %s de la nota %s no existe", n.UserID, n.ID)
			}
			out[i] = toNoteResponse(n, user)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("notes.List: asignados: %w", err)
	}
	return out, nil
}

// Create valida y crea una nota abierta.
func (uc *NoteUseCase) Create(ctx context.Context, in dto.CreateNoteRequest) error {
	if err := validateNoteFields(in.User, in.Title, in.Text); err != nil {
		return err
	}
	dup, err := uc.noteRepo.FindByTitle(ctx, in.Title)
	if err != nil {
		return fmt.Errorf("notes.Create: %w", err)
	}
	if dup != nil {
		return duplicateNote(in.Title)
	}
	if err := uc.requireUser(ctx, in.User); err != nil {
		return err
	}

	now := uc.now()
	note := &entity.Note{
		ID:        uuid.New().String(),
		UserID:    in.User,
		Title:     in.Title,
		Text:      in.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.noteRepo.Create(ctx, note); err != nil {
		return uc.mapWriteError("notes.Create", in.Title, err)
	}
	return nil
}

// Update reemplaza user, title, text y completed. repairTime se fija sólo al pasar a completada.
func (uc *NoteUseCase) Update(ctx context.Context, in dto.UpdateNoteRequest) (string, error) {
	if err := validateNoteFields(in.User, in.Title, in.Text); err != nil {
		return "", err
	}
	completed, ok := in.Completed.(bool)
	if !ok {
		return "", domain.Invalid("Unknown Error")
	}

	note, err := uc.noteRepo.GetByID(ctx, in.ID)
	if err != nil {
		return "", fmt.Errorf("notes.Update: %w", err)
	}
	if note == nil {
		return "", domain.Invalid("Note Not Found")
	}
	dup, err := uc.noteRepo.FindByTitle(ctx, in.Title)
	if err != nil {
		return "", fmt.Errorf("notes.Update: %w", err)
	}
	if dup != nil && dup.ID != note.ID {
		return "", duplicateNote(in.Title)
	}
	if err := uc.requireUser(ctx, in.User); err != nil {
		return "", err
	}

	note.Apply(entity.NoteChanges{
		UserID:    in.User,
		Title:     in.Title,
		Text:      in.Text,
		Completed: completed,
	}, uc.now())
	if err := uc.noteRepo.Update(ctx, note); err != nil {
		return "", uc.mapWriteError("notes.Update", in.Title, err)
	}
	return fmt.Sprintf("%s has been Successfully Updated !", note.Title), nil
}

// Delete elimina una nota. No hay restricciones adicionales.
func (uc *NoteUseCase) Delete(ctx context.Context, in dto.DeleteNoteRequest) (string, error) {
	if in.ID == "" {
		return "", domain.Invalid("Note ID is Required !")
	}
	note, err := uc.noteRepo.GetByID(ctx, in.ID)
	if err != nil {
		return "", fmt.Errorf("notes.Delete: %w", err)
	}
	if note == nil {
		return "", domain.Invalid("Note Not Found")
	}
	if err := uc.noteRepo.Delete(ctx, note.ID); err != nil {
		return "", fmt.Errorf("notes.Delete: %w", err)
	}
	return fmt.Sprintf("Note %s with ID %s has been Successfully Deleted !", note.Title, note.ID), nil
}

func (uc *NoteUseCase) requireUser(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("notes: usuario asignado: %w", err)
	}
	if user == nil {
		return domain.Invalid("User Not Found")
	}
	return nil
}

// mapWriteError traduce las violaciones de restricciones del store al mismo
// error que producen las comprobaciones previas.
func (uc *NoteUseCase) mapWriteError(op, title string, err error) error {
	switch {
	case errors.Is(err, domain.ErrConflict):
		return duplicateNote(title)
	case errors.Is(err, domain.ErrUserNotFound):
		return domain.Invalid("User Not Found")
	case errors.Is(err, domain.ErrNotFound):
		return domain.Invalid("Note Not Found")
	}
	return fmt.Errorf("%s: %w", op, err)
}

func duplicateNote(title string) error {
	return domain.Conflict(fmt.Sprintf("Note %s Already Exists", title))
}

// validateNoteFields cada combinación de campos faltantes tiene su propio mensaje.
func validateNoteFields(user, title, text string) error {
	hasUser, hasTitle, hasText := user != "", title != "", text != ""
	switch {
	case hasUser && hasTitle && hasText:
		return nil
	case !hasUser && hasTitle && hasText:
		return domain.Invalid("Note has no Assigned User")
	case hasUser && !hasTitle && hasText:
		return domain.Invalid("Note Title is Required")
	case hasUser && hasTitle && !hasText:
		return domain.Invalid("Note Text is Required")
	case hasUser && !hasTitle && !hasText:
		return domain.Invalid("Note Title & Text is Required")
	default:
		return domain.Invalid("All Fields are Required")
	}
}

func toNoteResponse(n *entity.Note, assignee *entity.User) dto.NoteResponse {
	resp := dto.NoteResponse{
		ID:        n.ID,
		User:      n.UserID,
		Title:     n.Title,
		Text:      n.Text,
		Completed: n.Completed,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		Username:  assignee.Username,
		Avatar:    assignee.Avatar,
	}
	if n.RepairTime.Valid {
		minutes := n.RepairTime.Decimal.InexactFloat64()
		resp.RepairTime = &minutes
	}
	return resp
}
