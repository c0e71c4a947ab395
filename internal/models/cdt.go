package models

import (
	"fmt"
	"time"

	"github.com/LipezJ/eco-hogar/internal/projection"
)

type CdtStatus string

const (
	CdtStatusActive    CdtStatus = "active"
	CdtStatusMatured   CdtStatus = "matured"
	CdtStatusCancelled CdtStatus = "cancelled"
)

// Cdt is a fixed-term deposit. DueDate and FinalAmount are always derived
// from OpeningDate, InitialAmount, InterestRate and Term.
type Cdt struct {
	Base

	Institution   string    `gorm:"type:varchar(255)" json:"institution"`
	OpeningDate   time.Time `json:"openingDate"`
	InitialAmount float64   `gorm:"type:decimal(15,2)" json:"initialAmount"`
	InterestRate  float64   `gorm:"type:decimal(7,4)" json:"interestRate"`
	Term          int       `json:"term"`
	DueDate       time.Time `gorm:"index" json:"dueDate"`
	FinalAmount   float64   `gorm:"type:decimal(15,2)" json:"finalAmount"`
	Status        CdtStatus `gorm:"type:varchar(20);index;default:'active'" json:"status"`
	AutoRenew     bool      `gorm:"default:false" json:"autoRenew"`
	Description   string    `gorm:"type:text" json:"description,omitempty"`
}

func (c Cdt) DueAt() time.Time { return c.DueDate }
func (c Cdt) IsClosed() bool   { return c.Status != CdtStatusActive }

func (c *Cdt) Prepare() error {
	errs := FieldErrors{}
	requireText(errs, "institution", c.Institution)
	requireDate(errs, "openingDate", c.OpeningDate)
	requirePositive(errs, "initialAmount", c.InitialAmount)
	requireRate(errs, "interestRate", c.InterestRate)
	if projection.ValidateTerm(c.Term) != nil {
		errs.Add("term", fmt.Sprintf("must be between 1 and %d days", projection.MaxTermDays))
	}
	if c.Status == "" {
		c.Status = CdtStatusActive
	}
	requireOneOf(errs, "status", c.Status, CdtStatusActive, CdtStatusMatured, CdtStatusCancelled)
	if err := errs.Err(); err != nil {
		return err
	}

	finalAmount, err := projection.FinalAmount(c.InitialAmount, c.InterestRate, c.Term)
	if err != nil {
		return err
	}
	c.FinalAmount = finalAmount
	c.DueDate = projection.MaturityDate(c.OpeningDate, c.Term)
	return nil
}

// Renewal opens a new deposit at maturity, reinvesting the final amount.
func (c Cdt) Renewal() Cdt {
	return Cdt{
		Institution:   c.Institution,
		OpeningDate:   c.DueDate,
		InitialAmount: c.FinalAmount,
		InterestRate:  c.InterestRate,
		Term:          c.Term,
		Status:        CdtStatusActive,
		AutoRenew:     c.AutoRenew,
		Description:   c.Description,
	}
}
