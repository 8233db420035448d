package handlers

import (
	"context"

	"postboard/internal/config"
	"postboard/internal/service"

	"github.com/go-playground/validator/v10"
)

// HealthChecker reports whether the datastore is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	PostService   service.PostService
	UploadService service.UploadService
	StatsService  service.StatsService
	DB            HealthChecker
	Cfg           *config.Config
	Validate      *validator.Validate
}

func NewHandlers(service *service.Service, db HealthChecker, config *config.Config) *Handlers {
	return &Handlers{
		PostService:   service.Post,
		UploadService: service.Upload,
		StatsService:  service.Stats,
		DB:            db,
		Cfg:           config,
		Validate:      validator.New(),
	}
}
