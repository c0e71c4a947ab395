package services

import (
	"context"
	"errors"
	"time"

	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/projection"
	"github.com/LipezJ/eco-hogar/internal/repository"
)

// DebtService manages debts and the paid state of their installments. The
// amortization schedule is recomputed on every read and merged with the
// stored payment records.
type DebtService struct {
	*Resource[models.Debt, *models.Debt]
	installments repository.Store[models.InstallmentPayment]
}

func NewDebtService(debts repository.Store[models.Debt], installments repository.Store[models.InstallmentPayment], onChange ChangeFunc) *DebtService {
	return &DebtService{
		Resource:     NewResource[models.Debt](debts, onChange),
		installments: installments,
	}
}

// DebtSchedule is a debt with its full amortization table.
type DebtSchedule struct {
	Debt             models.Debt          `json:"debt"`
	MonthlyPayment   float64              `json:"monthlyPayment"`
	RemainingBalance float64              `json:"remainingBalance"`
	PaidInstallments int                  `json:"paidInstallments"`
	Payments         []projection.Payment `json:"payments"`
}

func (s *DebtService) Schedule(ctx context.Context, userID, debtID string) (*DebtSchedule, error) {
	debt, err := s.Get(ctx, userID, debtID)
	if err != nil {
		return nil, err
	}
	paid, err := s.paidInstallments(ctx, userID)
	if err != nil {
		return nil, err
	}

	payments, err := mergeSchedule(*debt, paid[debt.ID])
	if err != nil {
		return nil, err
	}

	summary := summarize(*debt, payments)
	return &DebtSchedule{
		Debt:             *debt,
		MonthlyPayment:   summary.MonthlyPayment,
		RemainingBalance: summary.Remaining,
		PaidInstallments: summary.PaidInstallments,
		Payments:         payments,
	}, nil
}

// SetPaid marks installment number of debtID as paid or unpaid. A nil
// paidDate on payment defaults to now.
func (s *DebtService) SetPaid(ctx context.Context, userID, debtID string, number int, paid bool, paidDate *time.Time, now time.Time) (*projection.Payment, error) {
	debt, err := s.Get(ctx, userID, debtID)
	if err != nil {
		return nil, err
	}
	if number < 1 || number > debt.Installments {
		return nil, ErrInstallmentOutOfRange
	}

	records, err := s.paidInstallments(ctx, userID)
	if err != nil {
		return nil, err
	}
	var existing *models.InstallmentPayment
	for i := range records[debtID] {
		if records[debtID][i].InstallmentNumber == number {
			existing = &records[debtID][i]
			break
		}
	}

	switch {
	case paid && existing == nil:
		record := models.InstallmentPayment{
			DebtID:            debtID,
			InstallmentNumber: number,
			PaidDate:          now,
		}
		if paidDate != nil {
			record.PaidDate = *paidDate
		}
		record.UserID = userID
		if err := record.Prepare(); err != nil {
			return nil, err
		}
		if err := s.installments.Create(ctx, &record); err != nil {
			return nil, err
		}
	case paid && paidDate != nil:
		existing.PaidDate = *paidDate
		if err := s.installments.Update(ctx, existing); err != nil {
			return nil, err
		}
	case !paid && existing != nil:
		if err := s.installments.Delete(ctx, userID, existing.ID); err != nil {
			return nil, err
		}
	}
	s.onChange(ctx, userID)

	schedule, err := s.Schedule(ctx, userID, debtID)
	if err != nil {
		return nil, err
	}
	payment := schedule.Payments[number-1]
	return &payment, nil
}

// Update replaces the debt and drops payment records for installments the
// new term no longer has.
func (s *DebtService) Update(ctx context.Context, userID, id string, item *models.Debt) error {
	if err := s.Resource.Update(ctx, userID, id, item); err != nil {
		return err
	}

	records, err := s.paidInstallments(ctx, userID)
	if err != nil {
		return err
	}
	for _, r := range records[id] {
		if r.InstallmentNumber > item.Installments {
			if err := s.installments.Delete(ctx, userID, r.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// Delete removes the debt together with its payment records.
func (s *DebtService) Delete(ctx context.Context, userID, id string) error {
	if err := s.Resource.Delete(ctx, userID, id); err != nil {
		return err
	}

	records, err := s.paidInstallments(ctx, userID)
	if err != nil {
		return err
	}
	for _, r := range records[id] {
		if err := s.installments.Delete(ctx, userID, r.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}
	return nil
}

func (s *DebtService) Stats(ctx context.Context, userID string, now time.Time) (DebtStats, error) {
	debts, err := s.List(ctx, userID)
	if err != nil {
		return DebtStats{}, err
	}
	schedules, err := s.schedules(ctx, userID, debts)
	if err != nil {
		return DebtStats{}, err
	}
	return ComputeDebtStats(debts, schedules, now), nil
}

func (s *DebtService) schedules(ctx context.Context, userID string, debts []models.Debt) (map[string][]projection.Payment, error) {
	paid, err := s.paidInstallments(ctx, userID)
	if err != nil {
		return nil, err
	}

	schedules := make(map[string][]projection.Payment, len(debts))
	for _, d := range debts {
		payments, err := mergeSchedule(d, paid[d.ID])
		if err != nil {
			return nil, err
		}
		schedules[d.ID] = payments
	}
	return schedules, nil
}

// paidInstallments groups the user's payment records by debt ID.
func (s *DebtService) paidInstallments(ctx context.Context, userID string) (map[string][]models.InstallmentPayment, error) {
	records, err := s.installments.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]models.InstallmentPayment)
	for _, r := range records {
		grouped[r.DebtID] = append(grouped[r.DebtID], r)
	}
	return grouped, nil
}

func mergeSchedule(debt models.Debt, paid []models.InstallmentPayment) ([]projection.Payment, error) {
	payments, err := projection.Schedule(debt.Loan())
	if err != nil {
		return nil, err
	}
	for _, r := range paid {
		if r.InstallmentNumber < 1 || r.InstallmentNumber > len(payments) {
			continue
		}
		p := &payments[r.InstallmentNumber-1]
		paidDate := r.PaidDate
		p.IsPaid = true
		p.PaidDate = &paidDate
	}
	return payments, nil
}
