package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"postboard/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOClient struct {
	client *minio.Client
	config config.MinIO
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIOClient{client: client, config: cfg.MinIO}, nil
}

// EnsureReady creates the bucket when it is missing.
func (m *MinIOClient) EnsureReady(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.config.BucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", m.config.BucketName, err)
	}
	if exists {
		return nil
	}

	err = m.client.MakeBucket(ctx, m.config.BucketName, minio.MakeBucketOptions{Region: m.config.Region})
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", m.config.BucketName, err)
	}

	return nil
}

func (m *MinIOClient) Save(ctx context.Context, name string, data io.Reader, size int64, contentType string) (*StoredObject, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := m.client.PutObject(ctx, m.config.BucketName, name, data, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": name,
				"uploaded-at":       time.Now().UTC().Format(time.RFC3339),
			},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to minio: %w", err)
	}

	return &StoredObject{
		Path: m.config.BucketName + "/" + name,
		URL:  m.objectURL(name),
		Size: info.Size,
	}, nil
}

func (m *MinIOClient) Delete(ctx context.Context, name string) error {
	err := m.client.RemoveObject(ctx, m.config.BucketName, name,
		minio.RemoveObjectOptions{
			GovernanceBypass: true,
		})
	if err != nil {
		return fmt.Errorf("failed to delete from minio: %w", err)
	}
	return nil
}

func (m *MinIOClient) objectURL(name string) string {
	scheme := "http"
	if m.config.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.config.Endpoint, m.config.BucketName, url.PathEscape(name))
}
