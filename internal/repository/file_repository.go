package repository

import (
	"context"
	"fmt"
	"time"

	"postboard/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type FileRepositoryImpl struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) *FileRepositoryImpl {
	return &FileRepositoryImpl{db: db}
}

func (r *FileRepositoryImpl) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (id, filename, type, size, path, base64, created_at)
		VALUES (:id, :filename, :type, :size, :path, :base64, :created_at)
	`

	if file.ID == "" {
		file.ID = uuid.New().String()
	}

	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.NamedExecContext(ctx, query, file)
	if err != nil {
		return fmt.Errorf("failed to create file record: %w", err)
	}

	return nil
}

func (r *FileRepositoryImpl) List(ctx context.Context) ([]models.File, error) {
	query := `
		SELECT id, filename, type, size, path, base64, created_at
		FROM files
		ORDER BY created_at, id
	`

	files := []models.File{}
	err := r.db.SelectContext(ctx, &files, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return files, nil
}
