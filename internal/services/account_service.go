package services

import (
	"context"

	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/repository"
)

type AccountService struct {
	*Resource[models.Account, *models.Account]
}

func NewAccountService(store repository.Store[models.Account], onChange ChangeFunc) *AccountService {
	return &AccountService{Resource: NewResource[models.Account](store, onChange)}
}

func (s *AccountService) Stats(ctx context.Context, userID string) (AccountStats, error) {
	accounts, err := s.List(ctx, userID)
	if err != nil {
		return AccountStats{}, err
	}
	return ComputeAccountStats(accounts), nil
}
