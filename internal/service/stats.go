package service

import (
	"context"

	"github.com/leadvaulthq/leadvault/internal/domain"
	"github.com/leadvaulthq/leadvault/internal/metrics"
	"github.com/leadvaulthq/leadvault/internal/models"
)

// statsStore provides the grouped counts behind pipeline statistics.
type statsStore interface {
	CountByStatus(ctx context.Context) (map[models.Status]int, error)
	CountByCity(ctx context.Context) (map[models.City]int, error)
}

var _ domain.StatsService = (*StatsService)(nil)

// StatsService summarizes the lead pipeline.
type StatsService struct {
	store statsStore
}

// NewStatsService creates a StatsService.
func NewStatsService(store statsStore) *StatsService {
	return &StatsService{store: store}
}

// BuyerStats returns lead counts overall and grouped by status and city.
func (s *StatsService) BuyerStats(ctx context.Context) (*models.BuyerStats, error) {
	byStatus, err := s.store.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	byCity, err := s.store.CountByCity(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range byStatus {
		total += n
	}

	metrics.BuyerCount.Set(float64(total))

	return &models.BuyerStats{Total: total, ByStatus: byStatus, ByCity: byCity}, nil
}
