package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wordbook/api/internal/config"
	"github.com/wordbook/api/internal/model"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	return Open(postgres.Open(cfg.DatabaseURL), cfg.LogLevel)
}

// Open wraps gorm.Open with the settings every connection shares. Duplicate
// key errors are translated to gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector, logLevel string) (*gorm.DB, error) {
	level := logger.Warn
	if logLevel == "debug" {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Word{},
		&model.User{},
		&model.History{},
		&model.Favorite{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		// Prefix search runs on LOWER(value) LIKE 'abc%'
		if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_words_value_lower_prefix ON words (LOWER(value) text_pattern_ops)").Error; err != nil {
			return fmt.Errorf("create prefix index: %w", err)
		}
	}
	return nil
}

// Ping checks the underlying connection pool.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
