package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/racs-hpc/hpcadmin-server/internal/config"
	"github.com/racs-hpc/hpcadmin-server/pkg/logger"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&Pirg{},
		&Group{},
		&APIKey{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedBootstrapKey creates the first admin API key when the api_keys table
// is empty. If no key is configured, a random one is generated and logged
// once so the operator can record it.
func SeedBootstrapKey(key string) error {
	var count int64
	if err := DB.Model(&APIKey{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if key == "" {
		key = uuid.NewString()
		logger.Info().Str("api_key", key).Msg("generated bootstrap admin API key")
	}
	return DB.Create(&APIKey{Key: key, Role: RoleAdmin}).Error
}
