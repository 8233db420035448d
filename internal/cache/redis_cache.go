package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"postboard/internal/config"
	"postboard/internal/models"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	Cli *redis.Client
	TTL time.Duration
}

func New(cfg config.Redis) *RedisCache {
	return &RedisCache{
		Cli: redis.NewClient(&redis.Options{Addr: cfg.Addr, DB: cfg.DB}),
		TTL: cfg.TTL,
	}
}

// NewPostCache returns a Redis cache when an address is configured and a
// NoopCache otherwise.
func NewPostCache(cfg config.Redis) PostCache {
	if cfg.Addr == "" {
		return NoopCache{}
	}
	return New(cfg)
}

func postKey(id int64) string {
	return "post:" + strconv.FormatInt(id, 10)
}

func (r *RedisCache) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	val, err := r.Cli.Get(ctx, postKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read post %d from cache: %w", id, err)
	}

	var post models.Post
	if err := json.Unmarshal([]byte(val), &post); err != nil {
		return nil, fmt.Errorf("failed to decode cached post %d: %w", id, err)
	}

	return &post, nil
}

func (r *RedisCache) SetPost(ctx context.Context, post *models.Post) error {
	b, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("failed to encode post %d: %w", post.ID, err)
	}
	return r.Cli.Set(ctx, postKey(post.ID), b, r.TTL).Err()
}

func (r *RedisCache) InvalidatePost(ctx context.Context, id int64) error {
	return r.Cli.Del(ctx, postKey(id)).Err()
}

func (r *RedisCache) Close() error {
	return r.Cli.Close()
}
