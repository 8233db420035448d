package repository

import (
	"context"
	"errors"
	"strings"

	"postboard/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrDuplicateTitle = errors.New("post with this title already exists")
)

// PostFilter selects a page of posts. Limit must be positive.
type PostFilter struct {
	Skip       int
	Limit      int
	ActiveOnly bool
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]models.Post, error)
	Count(ctx context.Context, activeOnly bool) (int, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID int64) error
}

type FileRepository interface {
	Create(ctx context.Context, file *models.File) error
	List(ctx context.Context) ([]models.File, error)
}

type StatsRepository interface {
	Counts(ctx context.Context) (*models.Stats, error)
}

type Repository struct {
	Post  PostRepository
	File  FileRepository
	Stats StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Post:  NewPostRepository(db),
		File:  NewFileRepository(db),
		Stats: NewStatsRepository(db),
	}
}

// isUniqueViolation reports whether err comes from a unique index, for both
// postgres (SQLSTATE 23505) and sqlite.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value")
}
