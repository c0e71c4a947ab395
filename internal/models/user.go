package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an account holder that can log in.
type User struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username     string `gorm:"type:varchar(100);uniqueIndex" json:"username"`
	Name         string `gorm:"type:varchar(255)" json:"name"`
	PasswordHash string `gorm:"type:varchar(100)" json:"-"`
}
