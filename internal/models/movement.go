package models

import "time"

type MovementType string

const (
	MovementTypeIncome  MovementType = "income"
	MovementTypeExpense MovementType = "expense"
)

type MovementCategory string

const (
	MovementCategoryFood      MovementCategory = "food"
	MovementCategoryTransport MovementCategory = "transport"
	MovementCategoryServices  MovementCategory = "services"
	MovementCategoryLeisure   MovementCategory = "leisure"
	MovementCategoryHealth    MovementCategory = "health"
	MovementCategoryEducation MovementCategory = "education"
	MovementCategoryHousing   MovementCategory = "housing"
	MovementCategoryOther     MovementCategory = "other"
)

// Movement is a single cash income or expense.
type Movement struct {
	Base

	Type        MovementType     `gorm:"type:varchar(20);index" json:"type"`
	Category    MovementCategory `gorm:"type:varchar(20)" json:"category"`
	Amount      float64          `gorm:"type:decimal(15,2)" json:"amount"`
	Description string           `gorm:"type:text" json:"description"`
	Tags        []string         `gorm:"serializer:json" json:"tags,omitempty"`
	Attachment  string           `gorm:"type:text" json:"attachment,omitempty"`
	Date        time.Time        `gorm:"index" json:"date"`
}

func (m *Movement) Prepare() error {
	errs := FieldErrors{}
	requireOneOf(errs, "type", m.Type, MovementTypeIncome, MovementTypeExpense)
	requireOneOf(errs, "category", m.Category,
		MovementCategoryFood, MovementCategoryTransport, MovementCategoryServices,
		MovementCategoryLeisure, MovementCategoryHealth, MovementCategoryEducation,
		MovementCategoryHousing, MovementCategoryOther)
	requirePositive(errs, "amount", m.Amount)
	requireText(errs, "description", m.Description)
	requireDate(errs, "date", m.Date)
	return errs.Err()
}
