package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/racs-hpc/hpcadmin-server/internal/services"
	"github.com/racs-hpc/hpcadmin-server/pkg/response"
)

type AuthHandler struct {
	svc *services.AuthService
}

func NewAuthHandler(svc *services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// IssueToken handles POST /auth/token, exchanging the X-API-Key header
// for a short-lived bearer token.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	apiKey := c.GetHeader("X-API-Key")
	if apiKey == "" {
		response.Unauthorized(c, "X-API-Key header required")
		return
	}

	token, err := h.svc.IssueToken(apiKey)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"token": token})
}
