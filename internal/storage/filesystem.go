package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
)

// FileSystemStore keeps uploads flat in one directory on local disk.
type FileSystemStore struct {
	basePath     string
	publicPrefix string
}

func NewFileSystemStore(basePath, publicPrefix string) *FileSystemStore {
	return &FileSystemStore{basePath: basePath, publicPrefix: publicPrefix}
}

// EnsureReady creates the upload directory if it doesn't exist.
func (fs *FileSystemStore) EnsureReady(_ context.Context) error {
	if err := os.MkdirAll(fs.basePath, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", fs.basePath, err)
	}
	return nil
}

// Save writes data to {basePath}/{name}, replacing any existing file with the
// same name.
func (fs *FileSystemStore) Save(_ context.Context, name string, data io.Reader, _ int64, _ string) (*StoredObject, error) {
	filePath := fs.filePath(name)

	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer file.Close()

	n, err := io.Copy(file, data)
	if err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &StoredObject{
		Path: filePath,
		URL:  fs.publicPrefix + "/" + url.PathEscape(filepath.Base(name)),
		Size: n,
	}, nil
}

func (fs *FileSystemStore) Delete(_ context.Context, name string) error {
	filePath := fs.filePath(name)
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", filePath, err)
	}
	return nil
}

func (fs *FileSystemStore) filePath(name string) string {
	return filepath.Join(fs.basePath, filepath.Base(name))
}
