package services

import (
	"context"
	"errors"

	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/repository"
)

var (
	ErrAlreadyPaid           = errors.New("bill is already paid")
	ErrInstallmentOutOfRange = errors.New("installment number out of range")
)

// ChangeFunc is called after any mutation of a user's data.
type ChangeFunc func(ctx context.Context, userID string)

// Resource implements owner-scoped CRUD over a store. Records are validated
// and have their derived fields filled by Prepare before every write.
type Resource[T any, P repository.Record[T]] struct {
	store    repository.Store[T]
	onChange ChangeFunc
}

func NewResource[T any, P repository.Record[T]](store repository.Store[T], onChange ChangeFunc) *Resource[T, P] {
	if onChange == nil {
		onChange = func(context.Context, string) {}
	}
	return &Resource[T, P]{store: store, onChange: onChange}
}

func (r *Resource[T, P]) List(ctx context.Context, userID string) ([]T, error) {
	return r.store.List(ctx, userID)
}

func (r *Resource[T, P]) Get(ctx context.Context, userID, id string) (*T, error) {
	return r.store.Get(ctx, userID, id)
}

// Create stores item as a new record owned by userID. Any client-supplied ID
// is discarded.
func (r *Resource[T, P]) Create(ctx context.Context, userID string, item *T) error {
	meta := P(item).Meta()
	*meta = models.Base{UserID: userID}

	if err := P(item).Prepare(); err != nil {
		return err
	}
	if err := r.store.Create(ctx, item); err != nil {
		return err
	}
	r.onChange(ctx, userID)
	return nil
}

// Update replaces the record id with item.
func (r *Resource[T, P]) Update(ctx context.Context, userID, id string, item *T) error {
	existing, err := r.store.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	meta := P(item).Meta()
	*meta = *P(existing).Meta()
	return r.save(ctx, item)
}

func (r *Resource[T, P]) Delete(ctx context.Context, userID, id string) error {
	if err := r.store.Delete(ctx, userID, id); err != nil {
		return err
	}
	r.onChange(ctx, userID)
	return nil
}

// save validates and writes an already persisted record.
func (r *Resource[T, P]) save(ctx context.Context, item *T) error {
	if err := P(item).Prepare(); err != nil {
		return err
	}
	if err := r.store.Update(ctx, item); err != nil {
		return err
	}
	r.onChange(ctx, P(item).Meta().UserID)
	return nil
}
