package services

import (
	"context"
	"time"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store"
)

// StatsService menghitung angka dashboard admin dan status koneksi store.
type StatsService struct {
	base
}

func NewStatsService(s store.Store, timeout time.Duration) *StatsService {
	return &StatsService{base: newBase(s, timeout)}
}

func (s *StatsService) Dashboard(ctx context.Context) (*models.Stats, error) {
	ctx, cancel := s.readCtx(ctx)
	defer cancel()

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, storeError(err, "stats")
	}
	if stats.PaymentsByStatus == nil {
		stats.PaymentsByStatus = make(map[models.PaymentStatus]int64, len(models.PaymentStatuses))
	}
	for _, st := range models.PaymentStatuses {
		if _, ok := stats.PaymentsByStatus[st]; !ok {
			stats.PaymentsByStatus[st] = 0
		}
	}
	return stats, nil
}

// Ping melaporkan apakah store bisa dihubungi.
func (s *StatsService) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.store.Ping(ctx)
}
