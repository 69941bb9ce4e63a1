package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveYRemove(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalAvatarStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	name, err := s.Save(ctx, "../../mi foto.png", strings.NewReader("PNG"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "avatar-"))
	assert.True(t, strings.HasSuffix(name, "-mi_foto.png"))

	b, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "PNG", string(b))

	require.NoError(t, s.Remove(ctx, "http://api.test/uploads/"+name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Remove(ctx, "http://api.test/uploads/"+name), "borrar dos veces no falla")
}

func TestFileFromURL(t *testing.T) {
	assert.Equal(t, "a.png", fileFromURL("http://h/uploads/a.png"))
	assert.Equal(t, "", fileFromURL("https://cdn.example.com/img/a.png"))
	assert.Equal(t, "", fileFromURL("http://h/uploads/"))
	assert.Equal(t, "", fileFromURL(""))
}

func TestContentTypeOf(t *testing.T) {
	assert.Equal(t, "image/png", contentTypeOf("avatar-1-ab12-me.png"))
	assert.Equal(t, "application/octet-stream", contentTypeOf("avatar-1-ab12-sin_extension"))
}
