package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps records in process memory. It backs the server when no
// database is configured and is used throughout the tests.
type MemoryStore[T any, P Record[T]] struct {
	mu    sync.RWMutex
	items map[string]T
	now   func() time.Time
}

func NewMemoryStore[T any, P Record[T]]() *MemoryStore[T, P] {
	return &MemoryStore[T, P]{
		items: make(map[string]T),
		now:   time.Now,
	}
}

func (s *MemoryStore[T, P]) List(ctx context.Context, userID string) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]T, 0)
	for _, item := range s.items {
		if P(&item).Meta().UserID == userID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := P(&items[i]).Meta(), P(&items[j]).Meta()
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return items, nil
}

func (s *MemoryStore[T, P]) Get(ctx context.Context, userID, id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok || P(&item).Meta().UserID != userID {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (s *MemoryStore[T, P]) Create(ctx context.Context, item *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta := P(item).Meta()
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	now := s.now()
	meta.CreatedAt = now
	meta.UpdatedAt = now
	s.items[meta.ID] = *item
	return nil
}

func (s *MemoryStore[T, P]) Update(ctx context.Context, item *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta := P(item).Meta()
	existing, ok := s.items[meta.ID]
	if !ok || P(&existing).Meta().UserID != meta.UserID {
		return ErrNotFound
	}
	meta.CreatedAt = P(&existing).Meta().CreatedAt
	meta.UpdatedAt = s.now()
	s.items[meta.ID] = *item
	return nil
}

func (s *MemoryStore[T, P]) Delete(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || P(&item).Meta().UserID != userID {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}
