package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/racs-hpc/hpcadmin-server/internal/models"
	"github.com/racs-hpc/hpcadmin-server/internal/services"
	"github.com/racs-hpc/hpcadmin-server/internal/utils"
	"github.com/racs-hpc/hpcadmin-server/pkg/response"
)

const (
	ContextRole = "role"
)

// AuthRequired checks for a valid X-API-Key header or a bearer token
// previously issued for one, and stores the resolved role in the
// request context.
func AuthRequired(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey := c.GetHeader("X-API-Key"); apiKey != "" {
			role, err := auth.ResolveKey(apiKey)
			if err != nil {
				response.Unauthorized(c, "invalid API key")
				c.Abort()
				return
			}
			c.Set(ContextRole, role)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "X-API-Key or Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// AdminRequired rejects requests whose resolved role is not admin. Must
// run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists || role != models.RoleAdmin {
			response.Error(c, response.NewForbidden("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetRole gets the resolved role from context.
func GetRole(c *gin.Context) string {
	if role, exists := c.Get(ContextRole); exists {
		return role.(string)
	}
	return ""
}
