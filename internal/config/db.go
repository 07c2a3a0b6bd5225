package config

import (
	"context"
	"fmt"

	"github.com/yourEmotion/blogs/internal/migrations"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitPostgres(ctx context.Context, cfg DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.ConnString()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := migrations.Up(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("failed migrate: %w", err)
	}

	return db, nil
}
