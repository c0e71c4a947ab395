package repository

import (
	"gorm.io/gorm"

	"github.com/LipezJ/eco-hogar/internal/models"
)

// Stores bundles every repository the application needs.
type Stores struct {
	Users        UserRepository
	Accounts     Store[models.Account]
	Movements    Store[models.Movement]
	Bills        Store[models.Bill]
	Cdts         Store[models.Cdt]
	Debts        Store[models.Debt]
	Installments Store[models.InstallmentPayment]
}

func NewGormStores(db *gorm.DB) *Stores {
	return &Stores{
		Users:        NewGormUserRepository(db),
		Accounts:     NewGormStore[models.Account](db),
		Movements:    NewGormStore[models.Movement](db),
		Bills:        NewGormStore[models.Bill](db),
		Cdts:         NewGormStore[models.Cdt](db),
		Debts:        NewGormStore[models.Debt](db),
		Installments: NewGormStore[models.InstallmentPayment](db),
	}
}

func NewMemoryStores() *Stores {
	return &Stores{
		Users:        NewMemoryUserRepository(),
		Accounts:     NewMemoryStore[models.Account](),
		Movements:    NewMemoryStore[models.Movement](),
		Bills:        NewMemoryStore[models.Bill](),
		Cdts:         NewMemoryStore[models.Cdt](),
		Debts:        NewMemoryStore[models.Debt](),
		Installments: NewMemoryStore[models.InstallmentPayment](),
	}
}
