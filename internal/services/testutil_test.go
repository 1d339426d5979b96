package services

import (
	"errors"
	"testing"

	"github.com/racs-hpc/hpcadmin-server/internal/models"
	"github.com/racs-hpc/hpcadmin-server/internal/schemas"
	"github.com/racs-hpc/hpcadmin-server/pkg/response"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func asAppError(err error, target **response.AppError) bool {
	return errors.As(err, target)
}

// setupTestDB opens a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	// sqlite :memory: databases are per-connection; a second pooled
	// connection would see empty tables
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Pirg{}, &models.Group{}, &models.APIKey{}); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

// mustCreateUser creates a user directly through the service, failing
// the test on error.
func mustCreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user, err := NewUserService(db).Create(&schemas.UserCreate{
		UserBase: schemas.UserBase{
			Username:  username,
			Firstname: "Test",
			Lastname:  "User",
			Email:     username + "@localhost",
		},
	})
	if err != nil {
		t.Fatalf("creating user %s: %v", username, err)
	}
	return user
}
