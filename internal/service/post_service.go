package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"postboard/internal/cache"
	"postboard/internal/models"
	"postboard/internal/repository"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type PostInput struct {
	Title   string  `json:"title" validate:"required"`
	Content *string `json:"content"`
}

type Pagination struct {
	Skip        int `json:"skip"`
	Limit       int `json:"limit"`
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}

type PostPage struct {
	Posts      []models.Post
	Pagination Pagination
}

type PostService interface {
	ListPosts(ctx context.Context, skip, limit int) (*PostPage, error)
	CreatePost(ctx context.Context, req PostInput) (*models.Post, error)
	GetPost(ctx context.Context, postID int64) (*models.Post, error)
	UpdatePost(ctx context.Context, postID int64, req PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, postID int64) error
}

type postService struct {
	postRepo repository.PostRepository
	cache    cache.PostCache
}

func NewPostService(postRepo repository.PostRepository, postCache cache.PostCache) PostService {
	if postCache == nil {
		postCache = cache.NoopCache{}
	}
	return &postService{postRepo: postRepo, cache: postCache}
}

// NormalizePage applies the paging defaults: a negative skip becomes 0, a
// non-positive limit becomes DefaultLimit and limits above MaxLimit are
// clamped.
func NormalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return skip, limit
}

func (p *postService) ListPosts(ctx context.Context, skip, limit int) (*PostPage, error) {
	skip, limit = NormalizePage(skip, limit)

	posts, err := p.postRepo.List(ctx, repository.PostFilter{Skip: skip, Limit: limit, ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	total, err := p.postRepo.Count(ctx, true)
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts: posts,
		Pagination: Pagination{
			Skip:        skip,
			Limit:       limit,
			Total:       total,
			TotalPages:  (total + limit - 1) / limit,
			CurrentPage: skip/limit + 1,
		},
	}, nil
}

func (p *postService) CreatePost(ctx context.Context, req PostInput) (*models.Post, error) {
	exists, err := p.postRepo.ExistsByTitle(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("create post %q: %w", req.Title, repository.ErrDuplicateTitle)
	}

	post := &models.Post{
		Title:   req.Title,
		Content: req.Content,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// GetPost reads through the cache. Cache failures fall back to the
// datastore.
func (p *postService) GetPost(ctx context.Context, postID int64) (*models.Post, error) {
	post, err := p.cache.GetPost(ctx, postID)
	if err == nil {
		return post, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("post cache read failed", "post_id", postID, "error", err)
	}

	post, err = p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := p.cache.SetPost(ctx, post); err != nil {
		slog.Warn("post cache write failed", "post_id", postID, "error", err)
	}

	return post, nil
}

func (p *postService) UpdatePost(ctx context.Context, postID int64, req PostInput) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if req.Title != post.Title {
		exists, err := p.postRepo.ExistsByTitle(ctx, req.Title)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("update post %d: %w", postID, repository.ErrDuplicateTitle)
		}
	}

	post.Title = req.Title
	post.Content = req.Content
	post.UpdatedAt = time.Now().UTC()

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	p.invalidate(ctx, postID)

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, postID int64) error {
	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	p.invalidate(ctx, postID)

	return nil
}

func (p *postService) invalidate(ctx context.Context, postID int64) {
	if err := p.cache.InvalidatePost(ctx, postID); err != nil {
		slog.Warn("post cache invalidation failed", "post_id", postID, "error", err)
	}
}
