// Package storage guarda los avatares de usuario en disco local; se sirven como estáticos bajo /uploads.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/repairnotes-api/internal/application/usecase"
)

var _ usecase.AvatarStore = (*LocalAvatarStore)(nil)

// LocalAvatarStore escribe en dir y borra sólo archivos referenciados por URLs /uploads/<archivo>.
type LocalAvatarStore struct {
	dir string
	now func() time.Time
}

// NewLocalAvatarStore crea el directorio si no existe.
func NewLocalAvatarStore(dir string) (*LocalAvatarStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", dir, err)
	}
	return &LocalAvatarStore{dir: dir, now: time.Now}, nil
}

// Dir directorio raíz de los avatares.
func (s *LocalAvatarStore) Dir() string { return s.dir }

// Save copia r a un archivo nuevo "avatar-<unix>-<rand>-<nombre>" y devuelve ese nombre.
func (s *LocalAvatarStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("storage: nombre aleatorio: %w", err)
	}
	filename := fmt.Sprintf("avatar-%d-%s-%s", s.now().Unix(), hex.EncodeToString(suffix), sanitizeName(originalName))

	f, err := os.OpenFile(filepath.Join(s.dir, filename), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: crear archivo: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("storage: escribir avatar: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("storage: cerrar avatar: %w", err)
	}
	return filename, nil
}

// Remove borra el archivo al que apunta avatarURL. URLs ajenas a /uploads o archivos
// inexistentes no son error.
func (s *LocalAvatarStore) Remove(_ context.Context, avatarURL string) error {
	name := fileFromURL(avatarURL)
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: borrar avatar: %w", err)
	}
	return nil
}

// fileFromURL extrae el nombre de archivo de ".../uploads/<nombre>"; vacío si no aplica.
func fileFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	dir, name := path.Split(u.Path)
	if !strings.HasSuffix(dir, "/uploads/") || name == "" || name == "." || name == ".." {
		return ""
	}
	return name
}

func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." || name == ".." {
		return "avatar"
	}
	return name
}
