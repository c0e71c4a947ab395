package models

import (
	"time"

	"github.com/LipezJ/eco-hogar/internal/projection"
)

type BillCycle string

const (
	BillCycleMonthly    BillCycle = "monthly"
	BillCycleBimonthly  BillCycle = "bimonthly"
	BillCycleQuarterly  BillCycle = "quarterly"
	BillCycleSemiannual BillCycle = "semiannual"
	BillCycleAnnual     BillCycle = "annual"
)

// Months is the length of one billing period.
func (c BillCycle) Months() int {
	switch c {
	case BillCycleBimonthly:
		return 2
	case BillCycleQuarterly:
		return 3
	case BillCycleSemiannual:
		return 6
	case BillCycleAnnual:
		return 12
	default:
		return 1
	}
}

type BillStatus string

const (
	BillStatusPending BillStatus = "pending"
	BillStatusPaid    BillStatus = "paid"
	BillStatusOverdue BillStatus = "overdue"
)

type BillCategory string

const (
	BillCategoryElectricity BillCategory = "electricity"
	BillCategoryWater       BillCategory = "water"
	BillCategoryGas         BillCategory = "gas"
	BillCategoryInternet    BillCategory = "internet"
	BillCategoryPhone       BillCategory = "phone"
	BillCategoryCable       BillCategory = "cable"
	BillCategoryStreaming   BillCategory = "streaming"
	BillCategoryRent        BillCategory = "rent"
	BillCategoryCondo       BillCategory = "condo"
	BillCategoryInsurance   BillCategory = "insurance"
	BillCategoryOther       BillCategory = "other"
)

// Bill is a recurring utility or service charge.
type Bill struct {
	Base

	Provider    string       `gorm:"type:varchar(255)" json:"provider"`
	Category    BillCategory `gorm:"type:varchar(20)" json:"category"`
	Cycle       BillCycle    `gorm:"type:varchar(20)" json:"cycle"`
	Amount      float64      `gorm:"type:decimal(15,2)" json:"amount"`
	DueDate     time.Time    `gorm:"index" json:"dueDate"`
	Status      BillStatus   `gorm:"type:varchar(20);index;default:'pending'" json:"status"`
	PaymentDate *time.Time   `json:"paymentDate,omitempty"`
	Attachment  string       `gorm:"type:text" json:"attachment,omitempty"`
	Description string       `gorm:"type:text" json:"description,omitempty"`
	AutoRenew   bool         `gorm:"default:false" json:"autoRenew"`
}

func (b Bill) DueAt() time.Time { return b.DueDate }
func (b Bill) IsClosed() bool   { return b.Status == BillStatusPaid }

func (b *Bill) Prepare() error {
	errs := FieldErrors{}
	requireText(errs, "provider", b.Provider)
	requireOneOf(errs, "category", b.Category,
		BillCategoryElectricity, BillCategoryWater, BillCategoryGas, BillCategoryInternet,
		BillCategoryPhone, BillCategoryCable, BillCategoryStreaming, BillCategoryRent,
		BillCategoryCondo, BillCategoryInsurance, BillCategoryOther)
	requireOneOf(errs, "cycle", b.Cycle,
		BillCycleMonthly, BillCycleBimonthly, BillCycleQuarterly, BillCycleSemiannual, BillCycleAnnual)
	requirePositive(errs, "amount", b.Amount)
	requireDate(errs, "dueDate", b.DueDate)
	if b.Status == "" {
		b.Status = BillStatusPending
	}
	requireOneOf(errs, "status", b.Status, BillStatusPending, BillStatusPaid, BillStatusOverdue)
	if b.Status != BillStatusPaid {
		b.PaymentDate = nil
	}
	return errs.Err()
}

// Reopen puts an overdue bill back to pending when its due date has not
// passed at now.
func (b *Bill) Reopen(now time.Time) {
	if b.Status == BillStatusOverdue && projection.DaysUntil(b.DueDate, now) >= 0 {
		b.Status = BillStatusPending
	}
}

// Next builds the following period's bill, unsaved and pending.
func (b Bill) Next() Bill {
	return Bill{
		Provider:    b.Provider,
		Category:    b.Category,
		Cycle:       b.Cycle,
		Amount:      b.Amount,
		DueDate:     projection.AddMonths(b.DueDate, b.Cycle.Months()),
		Status:      BillStatusPending,
		Description: b.Description,
		AutoRenew:   b.AutoRenew,
	}
}
