package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/store"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the pool and waits for Postgres to answer, retrying while the
// server is still coming up.
func Connect(ctx context.Context, cfg *config.Config) error {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	policy := store.RetryPolicy{Attempts: cfg.DBRetryAttempts, Backoff: cfg.DBRetryBackoff}
	if err := store.Retry(ctx, policy, "database.connect", func() error {
		return sqlDB.PingContext(ctx)
	}); err != nil {
		_ = sqlDB.Close()
		return err
	}

	DB = db
	slog.Info("database connected", "max_open_conns", 25)
	return nil
}

// Migrate creates or updates the schema for every model. Parents come before
// children so the cascading foreign keys resolve.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.MedicalForm{},
		&models.Conversation{},
		&models.Message{},
		&models.SystemLog{},
	)
}

func Ping(ctx context.Context) error {
	if DB == nil {
		return fmt.Errorf("database not connected")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
