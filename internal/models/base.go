package models

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Base carries identity and ownership for every user-scoped record.
type Base struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string         `gorm:"type:varchar(36);index" json:"-"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Base) Meta() *Base { return b }

// Record is implemented by pointers to every user-scoped model. Prepare
// validates the record and fills in derived fields before it is stored.
type Record interface {
	Meta() *Base
	Prepare() error
}

// FieldErrors collects validation failures keyed by JSON field name.
type FieldErrors map[string]string

func (f FieldErrors) Add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// ValidationError is returned by Prepare when the record cannot be stored.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", field, msg))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err carries field validation failures.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func requireText(errs FieldErrors, field, value string) {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, "is required")
	}
}

func requirePositive(errs FieldErrors, field string, value float64) {
	if value <= 0 {
		errs.Add(field, "must be positive")
	}
}

func requireRate(errs FieldErrors, field string, value float64) {
	if value < 0 || value > 100 {
		errs.Add(field, "must be between 0 and 100")
	}
}

func requireDate(errs FieldErrors, field string, value time.Time) {
	if value.IsZero() {
		errs.Add(field, "is required")
	}
}

func requireOneOf[T ~string](errs FieldErrors, field string, value T, allowed ...T) {
	if !slices.Contains(allowed, value) {
		errs.Add(field, "has an unsupported value")
	}
}
