package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"postboard/internal/models"

	"github.com/jmoiron/sqlx"
)

const postColumns = `id, title, content, is_deleted, created_at, updated_at`

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, content, is_deleted, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`

	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	err := r.DB.GetContext(ctx, &post.ID, r.DB.Rebind(query),
		post.Title, post.Content, post.IsDeleted, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create post %q: %w", post.Title, ErrDuplicateTitle)
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = ?`

	var post models.Post
	err := r.DB.GetContext(ctx, &post, r.DB.Rebind(query), postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %d: %w", postID, ErrPostNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) List(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	args := []any{}

	if filter.ActiveOnly {
		query += ` WHERE is_deleted = ?`
		args = append(args, false)
	}

	query += ` ORDER BY id DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Skip)

	posts := []models.Post{}
	err := r.DB.SelectContext(ctx, &posts, r.DB.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Count(ctx context.Context, activeOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM posts`
	args := []any{}

	if activeOnly {
		query += ` WHERE is_deleted = ?`
		args = append(args, false)
	}

	var count int
	err := r.DB.GetContext(ctx, &count, r.DB.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return count, nil
}

func (r *PostRepositoryImpl) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	query := `SELECT COUNT(*) FROM posts WHERE title = ? AND is_deleted = ?`

	var count int
	err := r.DB.GetContext(ctx, &count, r.DB.Rebind(query), title, false)
	if err != nil {
		return false, fmt.Errorf("failed to check post title: %w", err)
	}

	return count > 0, nil
}

// Update writes title, content and updated_at of an existing post.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = ?,
			content = ?,
			updated_at = ?
		WHERE id = ?
	`

	result, err := r.DB.ExecContext(ctx, r.DB.Rebind(query),
		post.Title, post.Content, post.UpdatedAt, post.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to update post %d: %w", post.ID, ErrDuplicateTitle)
		}
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %d: %w", post.ID, ErrPostNotFound)
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID int64) error {
	query := `DELETE FROM posts WHERE id = ?`

	result, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %d: %w", postID, ErrPostNotFound)
	}

	return nil
}
