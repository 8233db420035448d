package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"postboard/internal/cache"
	"postboard/internal/config"
	"postboard/internal/database"
	handlers "postboard/internal/handler"
	"postboard/internal/repository"
	"postboard/internal/service"
	"postboard/internal/storage"
)

// Application holds the wired HTTP handler and the resources that must be
// released on shutdown.
type Application struct {
	DB      *database.DB
	Cache   cache.PostCache
	Handler http.Handler
}

// Close releases the cache client and the database pool.
func (a *Application) Close() error {
	return errors.Join(a.Cache.Close(), a.DB.CloseDB())
}

// App connects the datastore, prepares storage and wires the HTTP handler.
func App(ctx context.Context, cfg *config.Config) (*Application, error) {
	// connection DB
	db, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// upload storage, provisioned once
	store, err := storage.New(cfg)
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	if err := store.EnsureReady(ctx); err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("failed to prepare storage: %w", err)
	}
	slog.Info("storage initialized", "backend", cfg.Storage.Backend)

	postCache := cache.NewPostCache(cfg.Redis)
	if cfg.Redis.Addr != "" {
		slog.Info("post cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, store, postCache)
	h := handlers.NewHandlers(services, db, cfg)

	return &Application{
		DB:      db,
		Cache:   postCache,
		Handler: handlers.NewRouter(h, cfg),
	}, nil
}
