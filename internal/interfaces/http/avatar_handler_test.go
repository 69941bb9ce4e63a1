package http_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/repairnotes-api/internal/application/dto"
	apphttp "github.com/jhoicas/repairnotes-api/internal/interfaces/http"
)

type mapAvatars map[string]string

func (m mapAvatars) Open(_ context.Context, name string) (*dto.AvatarFile, error) {
	body, ok := m[name]
	if !ok {
		return nil, nil
	}
	return &dto.AvatarFile{
		Content:     io.NopCloser(strings.NewReader(body)),
		ContentType: "image/png",
		Size:        int64(len(body)),
	}, nil
}

func withAvatarFiles(files mapAvatars) serverOption {
	return func(d *apphttp.RouterDeps) { d.AvatarFiles = files }
}

func TestAvatar_ServidoDesdeBucket(t *testing.T) {
	s := newTestServer(t, withAvatarFiles(mapAvatars{"avatar-1-me.png": "PNGDATA"}))

	resp := s.do(t, http.MethodGet, "/uploads/avatar-1-me.png", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "PNGDATA", string(body))

	resp = s.do(t, http.MethodGet, "/uploads/otro.png", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "404 : Page Not Found", message(t, resp))
}

func TestAvatar_SinBucketNoHayRuta(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/uploads/avatar-1-me.png", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
