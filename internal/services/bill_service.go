package services

import (
	"context"
	"time"

	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/projection"
	"github.com/LipezJ/eco-hogar/internal/repository"
)

type BillService struct {
	*Resource[models.Bill, *models.Bill]
	now func() time.Time
}

func NewBillService(store repository.Store[models.Bill], onChange ChangeFunc) *BillService {
	return &BillService{Resource: NewResource[models.Bill](store, onChange), now: time.Now}
}

// Create stores a new bill. An overdue bill that is not past due yet is
// stored as pending.
func (s *BillService) Create(ctx context.Context, userID string, item *models.Bill) error {
	item.Reopen(s.now())
	return s.Resource.Create(ctx, userID, item)
}

// Update replaces the bill id. Moving an overdue bill's due date into the
// future reopens it.
func (s *BillService) Update(ctx context.Context, userID, id string, item *models.Bill) error {
	item.Reopen(s.now())
	return s.Resource.Update(ctx, userID, id, item)
}

// PayResult is the paid bill and, for auto-renewing bills, the next period's
// bill that was created alongside it.
type PayResult struct {
	Bill models.Bill  `json:"bill"`
	Next *models.Bill `json:"next,omitempty"`
}

func (s *BillService) Pay(ctx context.Context, userID, id string, paidAt time.Time) (*PayResult, error) {
	bill, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if bill.Status == models.BillStatusPaid {
		return nil, ErrAlreadyPaid
	}

	bill.Status = models.BillStatusPaid
	bill.PaymentDate = &paidAt
	if err := s.save(ctx, bill); err != nil {
		return nil, err
	}

	result := &PayResult{Bill: *bill}
	if bill.AutoRenew {
		next, err := s.createNext(ctx, userID, *bill)
		if err != nil {
			return nil, err
		}
		result.Next = next
	}
	return result, nil
}

// Renew creates the bill for the period after id.
func (s *BillService) Renew(ctx context.Context, userID, id string) (*models.Bill, error) {
	bill, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.createNext(ctx, userID, *bill)
}

func (s *BillService) createNext(ctx context.Context, userID string, bill models.Bill) (*models.Bill, error) {
	next := bill.Next()
	if err := s.Create(ctx, userID, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// SweepOverdue marks pending bills past their due date as overdue and
// returns how many changed.
func (s *BillService) SweepOverdue(ctx context.Context, userID string, now time.Time) (int, error) {
	bills, err := s.List(ctx, userID)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range bills {
		bill := &bills[i]
		if bill.Status != models.BillStatusPending || !projection.IsOverdue(bill, now) {
			continue
		}
		bill.Status = models.BillStatusOverdue
		if err := s.save(ctx, bill); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

func (s *BillService) Stats(ctx context.Context, userID string, now time.Time) (BillStats, error) {
	bills, err := s.List(ctx, userID)
	if err != nil {
		return BillStats{}, err
	}
	return ComputeBillStats(bills, now), nil
}
