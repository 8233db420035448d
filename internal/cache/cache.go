package cache

import (
	"context"
	"errors"

	"postboard/internal/models"
)

// ErrMiss is returned by GetPost when the post is not cached.
var ErrMiss = errors.New("cache miss")

// PostCache holds posts by id in front of the datastore.
type PostCache interface {
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	SetPost(ctx context.Context, post *models.Post) error
	InvalidatePost(ctx context.Context, id int64) error
	Close() error
}

// NoopCache is used when no cache is configured. Every lookup misses.
type NoopCache struct{}

func (NoopCache) GetPost(context.Context, int64) (*models.Post, error) {
	return nil, ErrMiss
}

func (NoopCache) SetPost(context.Context, *models.Post) error {
	return nil
}

func (NoopCache) InvalidatePost(context.Context, int64) error {
	return nil
}

func (NoopCache) Close() error {
	return nil
}
