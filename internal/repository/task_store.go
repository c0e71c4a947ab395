package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/LipezJ/eco-hogar/internal/models"
)

// TaskStore persists scheduled background tasks and their run history.
type TaskStore interface {
	// Pending returns active tasks due at or before now, oldest first.
	Pending(ctx context.Context, now time.Time) ([]models.ScheduledTask, error)
	FindByName(ctx context.Context, name string) (*models.ScheduledTask, error)
	Create(ctx context.Context, task *models.ScheduledTask) error
	Update(ctx context.Context, task *models.ScheduledTask) error
	AddHistory(ctx context.Context, history *models.ScheduledTaskHistory) error
}

type GormTaskStore struct {
	db *gorm.DB
}

func NewGormTaskStore(db *gorm.DB) *GormTaskStore {
	return &GormTaskStore{db: db}
}

func (s *GormTaskStore) Pending(ctx context.Context, now time.Time) ([]models.ScheduledTask, error) {
	var pending []models.ScheduledTask
	err := s.db.WithContext(ctx).
		Where("status = ? AND due <= ?", models.ScheduledTaskStatusActive, now).
		Order("due").
		Find(&pending).Error
	return pending, err
}

func (s *GormTaskStore) FindByName(ctx context.Context, name string) (*models.ScheduledTask, error) {
	var task models.ScheduledTask
	err := s.db.WithContext(ctx).Where("task_name = ?", name).Order("id desc").First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (s *GormTaskStore) Create(ctx context.Context, task *models.ScheduledTask) error {
	return s.db.WithContext(ctx).Create(task).Error
}

func (s *GormTaskStore) Update(ctx context.Context, task *models.ScheduledTask) error {
	return s.db.WithContext(ctx).Save(task).Error
}

func (s *GormTaskStore) AddHistory(ctx context.Context, history *models.ScheduledTaskHistory) error {
	return s.db.WithContext(ctx).Create(history).Error
}

// MemoryTaskStore keeps tasks in process memory.
type MemoryTaskStore struct {
	mu      sync.Mutex
	nextID  uint
	tasks   map[uint]models.ScheduledTask
	history []models.ScheduledTaskHistory
}

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{tasks: make(map[uint]models.ScheduledTask)}
}

func (s *MemoryTaskStore) Pending(ctx context.Context, now time.Time) ([]models.ScheduledTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := make([]models.ScheduledTask, 0)
	for _, t := range s.tasks {
		if t.Status == models.ScheduledTaskStatusActive && !t.Due.After(now) {
			pending = append(pending, t)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].Due.Equal(pending[j].Due) {
			return pending[i].ID < pending[j].ID
		}
		return pending[i].Due.Before(pending[j].Due)
	})
	return pending, nil
}

func (s *MemoryTaskStore) FindByName(ctx context.Context, name string) (*models.ScheduledTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *models.ScheduledTask
	for _, t := range s.tasks {
		if t.TaskName == name && (found == nil || t.ID > found.ID) {
			t := t
			found = &t
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (s *MemoryTaskStore) Create(ctx context.Context, task *models.ScheduledTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	task.ID = s.nextID
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	s.tasks[task.ID] = *task
	return nil
}

func (s *MemoryTaskStore) Update(ctx context.Context, task *models.ScheduledTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return ErrNotFound
	}
	task.UpdatedAt = time.Now()
	s.tasks[task.ID] = *task
	return nil
}

func (s *MemoryTaskStore) AddHistory(ctx context.Context, history *models.ScheduledTaskHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history.ID = uint(len(s.history) + 1)
	s.history = append(s.history, *history)
	return nil
}

// History returns every recorded run in insertion order.
func (s *MemoryTaskStore) History() []models.ScheduledTaskHistory {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ScheduledTaskHistory, len(s.history))
	copy(out, s.history)
	return out
}
