package repository

import (
	"context"
	"fmt"

	"postboard/internal/models"

	"github.com/jmoiron/sqlx"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Counts(ctx context.Context) (*models.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM posts WHERE is_deleted = ?) AS posts,
			(SELECT COUNT(*) FROM files) AS files
	`

	var stats models.Stats
	err := r.db.GetContext(ctx, &stats, r.db.Rebind(query), false)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}

	return &stats, nil
}
