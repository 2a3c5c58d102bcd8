package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shop-api/internal/config"
)

// Storage persists uploaded image bytes and serves them at a stable
// public URL. The database row referencing the URL is the source of
// truth; an orphaned object is acceptable, a dangling row is not.
type Storage interface {
	Save(ctx context.Context, filename string, data []byte) (url string, err error)
	Remove(ctx context.Context, url string) error
}

func New(cfg *config.Config) (Storage, error) {
	switch cfg.StorageBackend {
	case "", "local":
		return NewLocal(cfg.UploadDir), nil
	case "s3":
		return NewS3(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// NewFilename picks a collision-free stored name, keeping the original
// extension so the static file server reports the right content type.
func NewFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.NewString() + ext
}
