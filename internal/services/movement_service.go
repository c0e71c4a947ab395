package services

import (
	"context"
	"sort"
	"time"

	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/repository"
)

type MovementService struct {
	*Resource[models.Movement, *models.Movement]
}

func NewMovementService(store repository.Store[models.Movement], onChange ChangeFunc) *MovementService {
	return &MovementService{Resource: NewResource[models.Movement](store, onChange)}
}

// ListRange lists movements dated within [from, to], newest first.
func (s *MovementService) ListRange(ctx context.Context, userID string, from, to *time.Time) ([]models.Movement, error) {
	movements, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	movements = FilterMovements(movements, from, to)
	sort.SliceStable(movements, func(i, j int) bool { return movements[i].Date.After(movements[j].Date) })
	return movements, nil
}

func (s *MovementService) Stats(ctx context.Context, userID string, from, to *time.Time) (MovementStats, error) {
	movements, err := s.ListRange(ctx, userID, from, to)
	if err != nil {
		return MovementStats{}, err
	}
	return ComputeMovementStats(movements), nil
}
