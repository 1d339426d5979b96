package main

import (
	"github.com/racs-hpc/hpcadmin-server/internal/config"
	"github.com/racs-hpc/hpcadmin-server/internal/handlers"
	"github.com/racs-hpc/hpcadmin-server/internal/models"
	"github.com/racs-hpc/hpcadmin-server/internal/services"
	"github.com/racs-hpc/hpcadmin-server/internal/utils"
	"github.com/racs-hpc/hpcadmin-server/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the
// application.
type appServices struct {
	authService *services.AuthService
	authHandler *handlers.AuthHandler
}

// bootstrap initializes all application dependencies: database,
// services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.Auth.JWTSecret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed the first admin API key when none exist
	if err := models.SeedBootstrapKey(cfg.Auth.BootstrapKey); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed bootstrap API key")
	}

	authService := services.NewAuthService(models.GetDB(), cfg.Auth.TokenExpireHour)
	services.StartCacheSweepScheduler(authService)

	return &appServices{
		authService: authService,
		authHandler: handlers.NewAuthHandler(authService),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	services.StopCacheSweepScheduler()
	logger.Info().Msg("schedulers stopped")
}
