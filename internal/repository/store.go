package repository

import (
	"context"
	"errors"

	"github.com/LipezJ/eco-hogar/internal/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrUsernameTaken = errors.New("username already in use")
)

// Record constrains P to be *T with the models.Record methods, so stores can
// work with value types while reaching the embedded Base.
type Record[T any] interface {
	*T
	models.Record
}

// Store persists user-scoped records. Every lookup is filtered by owner, so a
// record belonging to another user behaves as not found.
type Store[T any] interface {
	List(ctx context.Context, userID string) ([]T, error)
	Get(ctx context.Context, userID, id string) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, userID, id string) error
}
