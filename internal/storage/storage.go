package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage abstracts where attachment bytes live. The core only deals in
// opaque storage keys.
type FileStorage interface {
	Save(ctx context.Context, key string, content io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// LocalFileStorage keeps attachment bytes on the local filesystem under a
// single root directory.
type LocalFileStorage struct {
	root string
}

// NewLocalFileStorage creates the root directory if needed.
func NewLocalFileStorage(root string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalFileStorage{root: root}, nil
}

func (s *LocalFileStorage) path(key string) string {
	// Keys are repository-issued identifiers; strip any path separators to
	// keep files inside the root.
	clean := strings.ReplaceAll(strings.ReplaceAll(key, "/", "_"), "\\", "_")
	return filepath.Join(s.root, clean)
}

// Save writes the content under the given key, replacing any previous file.
func (s *LocalFileStorage) Save(_ context.Context, key string, content io.Reader) error {
	file, err := os.Create(s.path(key))
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return err
	}
	return file.Sync()
}

// Open returns a reader over the stored bytes.
func (s *LocalFileStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	return os.Open(s.path(key))
}

// Delete removes the stored file; deleting a missing key is not an error.
func (s *LocalFileStorage) Delete(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
