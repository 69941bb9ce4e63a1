package usecase_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/repairnotes-api/internal/application/dto"
	"github.com/jhoicas/repairnotes-api/internal/application/usecase"
	"github.com/jhoicas/repairnotes-api/internal/domain"
	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
	"github.com/jhoicas/repairnotes-api/internal/infrastructure/memory"
)

const defaultAvatar = "http://localhost:3500/uploads/AVATAR.png"

// fakeAvatarStore guarda en memoria y registra los borrados.
type fakeAvatarStore struct {
	saved   map[string]string
	removed []string
}

func newFakeAvatarStore() *fakeAvatarStore {
	return &fakeAvatarStore{saved: map[string]string{}}
}

func (s *fakeAvatarStore) Save(_ context.Context, name string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	filename := "avatar-1-" + name
	s.saved[filename] = string(b)
	return filename, nil
}

func (s *fakeAvatarStore) Remove(_ context.Context, url string) error {
	s.removed = append(s.removed, url)
	return nil
}

func newUserUseCase(t *testing.T) (*usecase.UserUseCase, *memory.Store, *fakeAvatarStore) {
	t.Helper()
	store := memory.NewStore()
	avatars := newFakeAvatarStore()
	uc := usecase.NewUserUseCase(store.Users(), store.Notes(), avatars, defaultAvatar, newClock().Now)
	return uc, store, avatars
}

func findUser(t *testing.T, store *memory.Store, username string) *entity.User {
	t.Helper()
	u, err := store.Users().FindByUsername(context.Background(), username)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

// ─── Create ───────────────────────────────────────────────────────────────────

func TestUserCreate_DefaultsYHash(t *testing.T) {
	uc, store, _ := newUserUseCase(t)

	msg, err := uc.Create(context.Background(), dto.CreateUserRequest{Username: "dave", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "User dave Created Successfully", msg)

	u := findUser(t, store, "dave")
	assert.Equal(t, []entity.Role{entity.RoleEmployee}, u.Roles)
	assert.True(t, u.Active)
	assert.Equal(t, defaultAvatar, u.Avatar)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")))
}

func TestUserCreate_RolesPolimorficosYAvatar(t *testing.T) {
	uc, store, avatars := newUserUseCase(t)

	_, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Username: "eva",
		Password: "pw",
		Roles:    "Employee,Admin",
		Avatar:   &dto.AvatarUpload{Filename: "me.png", Content: strings.NewReader("PNG")},
		BaseURL:  "http://api.test/",
	})
	require.NoError(t, err)

	u := findUser(t, store, "eva")
	assert.Equal(t, []entity.Role{entity.RoleAdmin, entity.RoleEmployee}, u.Roles)
	assert.Equal(t, "http://api.test/uploads/avatar-1-me.png", u.Avatar)
	assert.Equal(t, "PNG", avatars.saved["avatar-1-me.png"])
}

func TestUserCreate_Errores(t *testing.T) {
	uc, _, _ := newUserUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateUserRequest{})
	assert.Equal(t, "Username & Password are Required", err.Error())
	_, err = uc.Create(ctx, dto.CreateUserRequest{Password: "x"})
	assert.Equal(t, "Username is Required", err.Error())
	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "x"})
	assert.Equal(t, "Password is Required", err.Error())
	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "x", Password: "y", Roles: "Janitor"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "Dave", Password: "y"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "dAVE", Password: "y"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "User dAVE Already Exists", err.Error())
}

// ─── Update ───────────────────────────────────────────────────────────────────

func TestUserUpdate_CamposOpcionales(t *testing.T) {
	uc, store, _ := newUserUseCase(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.CreateUserRequest{Username: "dave", Password: "old", Roles: []any{"Employee"}})
	require.NoError(t, err)
	u := findUser(t, store, "dave")

	msg, err := uc.Update(ctx, dto.UpdateUserRequest{
		ID:       u.ID,
		Username: "David",
		Password: "new",
		Roles:    `["Manager"]`,
		Active:   "FALSE",
	})
	require.NoError(t, err)
	assert.Equal(t, "David has been Successfully Updated !", msg)

	got := findUser(t, store, "david")
	assert.Equal(t, []entity.Role{entity.RoleManager}, got.Roles)
	assert.False(t, got.Active)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("new")))

	_, err = uc.Update(ctx, dto.UpdateUserRequest{ID: u.ID, Username: "David", Active: true})
	require.NoError(t, err)
	got = findUser(t, store, "david")
	assert.True(t, got.Active)
	assert.Equal(t, []entity.Role{entity.RoleManager}, got.Roles, "sin roles se conservan los actuales")
}

func TestUserUpdate_Errores(t *testing.T) {
	uc, store, _ := newUserUseCase(t)
	ctx := context.Background()
	_, _ = uc.Create(ctx, dto.CreateUserRequest{Username: "dave", Password: "pw"})
	_, _ = uc.Create(ctx, dto.CreateUserRequest{Username: "eva", Password: "pw"})
	dave := findUser(t, store, "dave")

	_, err := uc.Update(ctx, dto.UpdateUserRequest{Username: "x"})
	assert.Equal(t, "User ID is Required to Perform this Action", err.Error())
	_, err = uc.Update(ctx, dto.UpdateUserRequest{ID: dave.ID})
	assert.Equal(t, "Username is Required", err.Error())
	_, err = uc.Update(ctx, dto.UpdateUserRequest{ID: "nope", Username: "zed"})
	assert.Equal(t, "User zed Not Found", err.Error())
	_, err = uc.Update(ctx, dto.UpdateUserRequest{ID: dave.ID, Username: "EVA"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserUpdate_AvatarBorradoYReemplazo(t *testing.T) {
	uc, store, avatars := newUserUseCase(t)
	ctx := context.Background()
	_, _ = uc.Create(ctx, dto.CreateUserRequest{Username: "dave", Password: "pw"})
	dave := findUser(t, store, "dave")

	_, err := uc.Update(ctx, dto.UpdateUserRequest{ID: dave.ID, Username: "dave", DeleteAvatar: "true"})
	require.NoError(t, err)
	assert.Empty(t, findUser(t, store, "dave").Avatar)
	assert.Empty(t, avatars.removed, "el avatar por defecto nunca se borra del disco")

	_, err = uc.Update(ctx, dto.UpdateUserRequest{
		ID: dave.ID, Username: "dave",
		Avatar:  &dto.AvatarUpload{Filename: "a.png", Content: strings.NewReader("A")},
		BaseURL: "http://api.test",
	})
	require.NoError(t, err)
	first := findUser(t, store, "dave").Avatar
	assert.Equal(t, "http://api.test/uploads/avatar-1-a.png", first)

	_, err = uc.Update(ctx, dto.UpdateUserRequest{ID: dave.ID, Username: "dave", DeleteAvatar: true})
	require.NoError(t, err)
	assert.Equal(t, []string{first}, avatars.removed)
}

// ─── Delete / List ────────────────────────────────────────────────────────────

func TestUserDelete_BloqueadoConNotasAsignadas(t *testing.T) {
	uc, store, _ := newUserUseCase(t)
	notes := usecase.NewNoteUseCase(store.Notes(), store.Users(), newClock().Now)
	ctx := context.Background()
	_, _ = uc.Create(ctx, dto.CreateUserRequest{Username: "dave", Password: "pw"})
	dave := findUser(t, store, "dave")
	require.NoError(t, notes.Create(ctx, dto.CreateNoteRequest{User: dave.ID, Title: "Fix", Text: "x"}))

	_, err := uc.Delete(ctx, dto.DeleteUserRequest{ID: dave.ID})
	require.Error(t, err)
	assert.Equal(t, "User has Assigned Notes", err.Error())

	note := findNoteByTitle(t, store, "Fix")
	_, err = notes.Delete(ctx, dto.DeleteNoteRequest{ID: note.ID})
	require.NoError(t, err, "borrar la nota no tiene guardas")

	msg, err := uc.Delete(ctx, dto.DeleteUserRequest{ID: dave.ID})
	require.NoError(t, err)
	assert.Equal(t, "Username dave with ID "+dave.ID+" has been Deleted !", msg)

	_, err = uc.Delete(ctx, dto.DeleteUserRequest{})
	assert.Equal(t, "User ID is Required to Perform this Action!", err.Error())
	_, err = uc.Delete(ctx, dto.DeleteUserRequest{ID: dave.ID})
	assert.Equal(t, "User Not Found", err.Error())
}

func TestUserList_SinUsuarios(t *testing.T) {
	uc, _, _ := newUserUseCase(t)
	ctx := context.Background()

	_, err := uc.List(ctx)
	assert.Equal(t, "No Users Found", err.Error())

	_, _ = uc.Create(ctx, dto.CreateUserRequest{Username: "dave", Password: "pw", Roles: "Admin"})
	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"Admin"}, list[0].Roles)
}

// failingUpdateRepo delega en el store en memoria pero falla al persistir cambios.
type failingUpdateRepo struct {
	*memory.UserRepo
}

func (failingUpdateRepo) Update(context.Context, *entity.User) error {
	return errors.New("db down")
}

func TestUserUpdate_FalloDelStoreNoTocaAvatares(t *testing.T) {
	store := memory.NewStore()
	avatars := newFakeAvatarStore()
	ctx := context.Background()
	seedUser(t, store, "u1", "dave", entity.RoleEmployee)
	const current = "http://x/uploads/u1.png"

	uc := usecase.NewUserUseCase(failingUpdateRepo{store.Users()}, store.Notes(), avatars, defaultAvatar, newClock().Now)

	_, err := uc.Update(ctx, dto.UpdateUserRequest{
		ID: "u1", Username: "dave",
		Avatar:  &dto.AvatarUpload{Filename: "new.png", Content: strings.NewReader("img")},
		BaseURL: "http://api.test",
	})
	require.Error(t, err)
	assert.Equal(t, current, findUser(t, store, "dave").Avatar)
	assert.Equal(t, []string{"http://api.test/uploads/avatar-1-new.png"}, avatars.removed,
		"sólo se descarta el archivo recién subido")

	avatars.removed = nil
	_, err = uc.Update(ctx, dto.UpdateUserRequest{ID: "u1", Username: "dave", DeleteAvatar: true})
	require.Error(t, err)
	assert.Equal(t, current, findUser(t, store, "dave").Avatar)
	assert.Empty(t, avatars.removed, "el avatar referenciado sigue en disco")
}

func TestUserUpdate_ReemplazoBorraElAnteriorTrasGuardar(t *testing.T) {
	uc, store, avatars := newUserUseCase(t)
	ctx := context.Background()
	seedUser(t, store, "u1", "dave", entity.RoleEmployee)

	_, err := uc.Update(ctx, dto.UpdateUserRequest{
		ID: "u1", Username: "dave",
		Avatar:  &dto.AvatarUpload{Filename: "b.png", Content: strings.NewReader("B")},
		BaseURL: "http://api.test",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://api.test/uploads/avatar-1-b.png", findUser(t, store, "dave").Avatar)
	assert.Equal(t, []string{"http://x/uploads/u1.png"}, avatars.removed)
}
