package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore is the database-backed Store.
type GormStore[T any, P Record[T]] struct {
	db *gorm.DB
}

func NewGormStore[T any, P Record[T]](db *gorm.DB) *GormStore[T, P] {
	return &GormStore[T, P]{db: db}
}

func (s *GormStore[T, P]) List(ctx context.Context, userID string) ([]T, error) {
	items := make([]T, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore[T, P]) Get(ctx context.Context, userID, id string) (*T, error) {
	var item T
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *GormStore[T, P]) Create(ctx context.Context, item *T) error {
	meta := P(item).Meta()
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *GormStore[T, P]) Update(ctx context.Context, item *T) error {
	meta := P(item).Meta()
	res := s.db.WithContext(ctx).
		Model(item).
		Where("user_id = ?", meta.UserID).
		Select("*").
		Omit("id", "user_id", "created_at", "deleted_at").
		Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore[T, P]) Delete(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
