package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/repairnotes-api/internal/application/dto"
	"github.com/jhoicas/repairnotes-api/internal/application/usecase"
	"github.com/jhoicas/repairnotes-api/pkg/config"
)

var _ usecase.AvatarStore = (*ObjectAvatarStore)(nil)

// ObjectAvatarStore guarda los avatares en un bucket S3/MinIO. La API los sirve bajo /uploads/<nombre>,
// así las URLs no cambian respecto del almacenamiento en disco.
type ObjectAvatarStore struct {
	client *minio.Client
	bucket string
	region string
	now    func() time.Time
}

// NewObjectAvatarStore crea el cliente MinIO a partir de la configuración.
func NewObjectAvatarStore(cfg config.StorageConfig) (*ObjectAvatarStore, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("storage: parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: init minio: %w", err)
	}
	return &ObjectAvatarStore{client: client, bucket: cfg.Bucket, region: cfg.Region, now: time.Now}, nil
}

// EnsureBucket crea el bucket si no existe.
func (s *ObjectAvatarStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("storage: bucket exists %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("storage: create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// Save sube r como objeto "avatar-<unix>-<rand>-<nombre>" y devuelve ese nombre.
func (s *ObjectAvatarStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("storage: nombre aleatorio: %w", err)
	}
	name := sanitizeName(originalName)
	key := fmt.Sprintf("avatar-%d-%s-%s", s.now().Unix(), hex.EncodeToString(suffix), name)

	opts := minio.PutObjectOptions{ContentType: contentTypeOf(name)}
	if _, err := s.client.PutObject(ctx, s.bucket, key, r, -1, opts); err != nil {
		return "", fmt.Errorf("storage: put object: %w", err)
	}
	return key, nil
}

// Remove borra el objeto referenciado por avatarURL. URLs ajenas a /uploads u objetos
// inexistentes no son error.
func (s *ObjectAvatarStore) Remove(ctx context.Context, avatarURL string) error {
	key := fileFromURL(avatarURL)
	if key == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		if isMissingObject(err) {
			return nil
		}
		return fmt.Errorf("storage: remove object: %w", err)
	}
	return nil
}

// Open devuelve el objeto name; (nil, nil) si no existe.
func (s *ObjectAvatarStore) Open(ctx context.Context, name string) (*dto.AvatarFile, error) {
	if name == "" || name != sanitizeName(name) {
		return nil, nil
	}
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("storage: get object: %w", err)
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if isMissingObject(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: stat object: %w", err)
	}
	return &dto.AvatarFile{Content: obj, ContentType: info.ContentType, Size: info.Size}, nil
}

func isMissingObject(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NoSuchObject"
}

func contentTypeOf(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
