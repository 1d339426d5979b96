package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/racs-hpc/hpcadmin-server/internal/schemas"
	"github.com/racs-hpc/hpcadmin-server/internal/services"
	"github.com/racs-hpc/hpcadmin-server/pkg/response"
	"gorm.io/gorm"
)

type GroupHandler struct {
	svc *services.GroupService
}

func NewGroupHandler(db *gorm.DB) *GroupHandler {
	return &GroupHandler{svc: services.NewGroupService(db)}
}

// GetByID handles GET /groups/:id.
func (h *GroupHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}

	group, err := h.svc.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, schemas.NewGroup(group))
}

// Create handles POST /groups.
func (h *GroupHandler) Create(c *gin.Context) {
	var req schemas.GroupCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	group, err := h.svc.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schemas.NewGroup(group))
}
