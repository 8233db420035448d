package storage

import (
	"context"
	"io"

	"postboard/internal/config"
)

// StoredObject describes where a saved upload ended up. Path is the backend
// location, URL the address clients use to fetch it.
type StoredObject struct {
	Path string
	URL  string
	Size int64
}

type Storage interface {
	Save(ctx context.Context, name string, data io.Reader, size int64, contentType string) (*StoredObject, error)
	Delete(ctx context.Context, name string) error
	EnsureReady(ctx context.Context) error
}

// New returns the backend selected by STORAGE_BACKEND.
func New(cfg *config.Config) (Storage, error) {
	if cfg.Storage.Backend == config.StorageMinIO {
		client, err := NewMinIOClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return NewFileSystemStore(cfg.Storage.UploadDir, cfg.Storage.PublicPrefix), nil
}
