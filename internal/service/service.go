package service

import (
	"postboard/internal/cache"
	"postboard/internal/config"
	"postboard/internal/repository"
	"postboard/internal/storage"
)

type Service struct {
	Post   PostService
	Upload UploadService
	Stats  StatsService
}

func NewService(rep *repository.Repository, cfg *config.Config, store storage.Storage, postCache cache.PostCache) *Service {
	return &Service{
		Post:   NewPostService(rep.Post, postCache),
		Upload: NewUploadService(rep.File, store, cfg),
		Stats:  NewStatsService(rep.Stats),
	}
}
