package services

import (
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/LipezJ/eco-hogar/internal/models"
)

// InitDB opens the Postgres connection and configures the pool.
func InitDB(dsn string, production bool, appLogger *log.Logger) (*gorm.DB, error) {
	level := logger.Info
	if production {
		level = logger.Warn
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	appLogger.Info("database connection established")
	return db, nil
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB, appLogger *log.Logger) error {
	appLogger.Info("running database migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Movement{},
		&models.Bill{},
		&models.Cdt{},
		&models.Debt{},
		&models.InstallmentPayment{},
		&models.ScheduledTask{},
		&models.ScheduledTaskHistory{},
	)
	if err != nil {
		return err
	}

	appLogger.Info("database migrations completed")
	return nil
}
