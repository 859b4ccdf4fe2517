package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
)

// LocalStore writes media into a directory served as static content.
type LocalStore struct {
	dir      string
	basePath string
}

// NewLocalStore creates the upload directory if needed. basePath is the public
// path prefix the files are served under (e.g. "/static/uploads").
func NewLocalStore(dir, basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir, basePath: basePath}, nil
}

func (s *LocalStore) Save(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	dst, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, body); err != nil {
		return "", err
	}
	if err := dst.Sync(); err != nil {
		return "", err
	}

	return path.Join(s.basePath, key), nil
}
