package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// PublicPath is the route prefix the upload dir is served under. Stored
// image URLs embed it, so it must stay stable across deployments.
const PublicPath = "/static"

type Local struct {
	dir string
}

func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

func (l *Local) Save(ctx context.Context, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(l.dir, filename), data, 0o644); err != nil {
		return "", err
	}

	return PublicPath + "/" + filename, nil
}

func (l *Local) Remove(ctx context.Context, url string) error {
	err := os.Remove(filepath.Join(l.dir, path.Base(url)))
	if errors.Is(err, fs.ErrNotExist) {
		// Already gone, nothing to reconcile.
		return nil
	}
	return err
}
