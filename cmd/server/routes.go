package main

import (
	"github.com/gin-gonic/gin"
	"github.com/racs-hpc/hpcadmin-server/internal/handlers"
	"github.com/racs-hpc/hpcadmin-server/internal/middleware"
	"github.com/racs-hpc/hpcadmin-server/internal/models"
	"github.com/racs-hpc/hpcadmin-server/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	apiLimiter := middleware.NewRateLimiter(20, 40)

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api/v1", apiLimiter.Middleware())
	{
		api.POST("/auth/token", svc.authHandler.IssueToken)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(svc.authService))
		{
			// Users
			userHandler := handlers.NewUserHandler(models.GetDB())
			protected.GET("/users", userHandler.List)
			protected.GET("/users/:id", userHandler.GetByID)
			protected.POST("/users", middleware.AdminRequired(), userHandler.Create)
			protected.PUT("/users/:id", middleware.AdminRequired(), userHandler.Update)

			// Pirgs
			pirgHandler := handlers.NewPirgHandler(models.GetDB())
			protected.GET("/pirgs", pirgHandler.List)
			protected.GET("/pirgs/:id", pirgHandler.GetByID)
			protected.POST("/pirgs", middleware.AdminRequired(), pirgHandler.Create)
			protected.PUT("/pirgs/:id", middleware.AdminRequired(), pirgHandler.Update)
			protected.POST("/pirgs/:id/users", middleware.AdminRequired(), pirgHandler.AddUser)
			protected.DELETE("/pirgs/:id/users", middleware.AdminRequired(), pirgHandler.RemoveUser)
			protected.POST("/pirgs/:id/admins", middleware.AdminRequired(), pirgHandler.AddAdmin)
			protected.DELETE("/pirgs/:id/admins", middleware.AdminRequired(), pirgHandler.RemoveAdmin)
			protected.GET("/pirgs/:id/groups", pirgHandler.ListGroups)
			protected.POST("/pirgs/:id/groups", middleware.AdminRequired(), pirgHandler.AddGroup)
			protected.POST("/pirgs/:id/groups/find", pirgHandler.FindGroup)

			// Groups
			groupHandler := handlers.NewGroupHandler(models.GetDB())
			protected.GET("/groups/:id", groupHandler.GetByID)
			protected.POST("/groups", middleware.AdminRequired(), groupHandler.Create)
		}
	}
}
