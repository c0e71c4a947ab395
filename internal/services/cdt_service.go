package services

import (
	"context"
	"time"

	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/projection"
	"github.com/LipezJ/eco-hogar/internal/repository"
)

type CdtService struct {
	*Resource[models.Cdt, *models.Cdt]
}

func NewCdtService(store repository.Store[models.Cdt], onChange ChangeFunc) *CdtService {
	return &CdtService{Resource: NewResource[models.Cdt](store, onChange)}
}

// CdtProjection describes where a deposit stands at a given moment.
type CdtProjection struct {
	Cdt             models.Cdt `json:"cdt"`
	InterestEarned  float64    `json:"interestEarned"`
	AccruedInterest float64    `json:"accruedInterest"`
	DaysRemaining   int        `json:"daysRemaining"`
	Progress        float64    `json:"progress"`
	IsDueSoon       bool       `json:"isDueSoon"`
	IsOverdue       bool       `json:"isOverdue"`
}

func ProjectCdt(cdt models.Cdt, now time.Time) (CdtProjection, error) {
	accrued, err := projection.AccruedInterest(cdt.InitialAmount, cdt.InterestRate, cdt.OpeningDate, now)
	if err != nil {
		return CdtProjection{}, err
	}
	return CdtProjection{
		Cdt:             cdt,
		InterestEarned:  projection.InterestEarned(cdt.InitialAmount, cdt.FinalAmount),
		AccruedInterest: accrued,
		DaysRemaining:   projection.DaysUntil(cdt.DueDate, now),
		Progress:        projection.Progress(cdt.OpeningDate, cdt.DueDate, now),
		IsDueSoon:       projection.IsDueSoon(cdt, projection.DepositDueSoonWindow, now),
		IsOverdue:       projection.IsOverdue(cdt, now),
	}, nil
}

func (s *CdtService) Projection(ctx context.Context, userID, id string, now time.Time) (*CdtProjection, error) {
	cdt, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	p, err := ProjectCdt(*cdt, now)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SweepResult counts deposits matured and reopened by a sweep.
type SweepResult struct {
	Matured int `json:"matured"`
	Renewed int `json:"renewed"`
}

// SweepMatured closes active deposits whose due date has been reached.
// Auto-renewing deposits are reopened with the final amount as principal.
func (s *CdtService) SweepMatured(ctx context.Context, userID string, now time.Time) (SweepResult, error) {
	var result SweepResult

	cdts, err := s.List(ctx, userID)
	if err != nil {
		return result, err
	}

	for i := range cdts {
		cdt := &cdts[i]
		if cdt.Status != models.CdtStatusActive || now.Before(cdt.DueDate) {
			continue
		}

		cdt.Status = models.CdtStatusMatured
		if err := s.save(ctx, cdt); err != nil {
			return result, err
		}
		result.Matured++

		if cdt.AutoRenew {
			renewal := cdt.Renewal()
			if err := s.Create(ctx, userID, &renewal); err != nil {
				return result, err
			}
			result.Renewed++
		}
	}
	return result, nil
}

func (s *CdtService) Stats(ctx context.Context, userID string, now time.Time) (CdtStats, error) {
	cdts, err := s.List(ctx, userID)
	if err != nil {
		return CdtStats{}, err
	}
	return ComputeCdtStats(cdts, now), nil
}
