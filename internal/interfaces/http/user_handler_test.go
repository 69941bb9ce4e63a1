package http_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
)

func TestUsers_CrearMultipartConAvatarYRoles(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("username", "eva"))
	require.NoError(t, w.WriteField("password", "pw"))
	require.NoError(t, w.WriteField("roles", "Employee"))
	require.NoError(t, w.WriteField("roles", "Manager"))
	fw, err := w.CreateFormFile("avatar", "me.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("PNG"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/users", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", s.bearer(t, "root", "Admin"))
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User eva Created Successfully", message(t, resp))

	u, err := s.store.Users().FindByUsername(context.Background(), "EVA")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, []entity.Role{entity.RoleManager, entity.RoleEmployee}, u.Roles)
	assert.Equal(t, "http://api.test/uploads/avatar-1-me.png", u.Avatar)
}

func TestUsers_ListaSinPasswordYBorradoBloqueado(t *testing.T) {
	s := newTestServer(t)
	auth := s.bearer(t, "root", "Admin")

	resp := s.do(t, http.MethodGet, "/users", auth, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No Users Found", message(t, resp))

	s.addUser(t, "u1", "dave", "pw", entity.RoleEmployee)
	resp = s.do(t, http.MethodGet, "/users", auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]map[string]any](t, resp)
	require.Len(t, list, 1)
	assert.NotContains(t, list[0], "password")
	assert.NotContains(t, list[0], "passwordHash")

	s.do(t, http.MethodPost, "/notes", auth, map[string]string{"user": "u1", "title": "A", "text": "x"})
	resp = s.do(t, http.MethodDelete, "/users", auth, map[string]string{"id": "u1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User has Assigned Notes", message(t, resp))
}

func TestUsers_ActualizarJSON(t *testing.T) {
	s := newTestServer(t)
	s.addUser(t, "u1", "dave", "pw", entity.RoleEmployee)
	s.addUser(t, "u2", "eva", "pw", entity.RoleEmployee)
	auth := s.bearer(t, "root", "Admin")

	resp := s.do(t, http.MethodPatch, "/users", auth, map[string]any{"id": "u1", "username": "Eva"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = s.do(t, http.MethodPatch, "/users", auth, map[string]any{"id": "u1", "username": "dave", "active": false, "roles": []string{"Admin"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "dave has been Successfully Updated !", message(t, resp))

	u, _ := s.store.Users().GetByID(context.Background(), "u1")
	assert.False(t, u.Active)
	assert.Equal(t, []entity.Role{entity.RoleAdmin}, u.Roles)
}
