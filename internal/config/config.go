package config

import (
	"context"

	"gorm.io/gorm"

	"github.com/masalakitchen/storefront/internal/models"
	"github.com/masalakitchen/storefront/pkg/config"
	"github.com/masalakitchen/storefront/pkg/db"
)

type ServiceConfig struct {
	config.Config
}

func Load() ServiceConfig {
	cfg := config.Load()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	return ServiceConfig{Config: cfg}
}

func InitDB(ctx context.Context, cfg ServiceConfig) (*gorm.DB, error) {
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := gdb.AutoMigrate(models.All()...); err != nil {
		return nil, err
	}
	return gdb, nil
}
