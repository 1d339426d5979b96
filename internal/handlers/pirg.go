package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/racs-hpc/hpcadmin-server/internal/models"
	"github.com/racs-hpc/hpcadmin-server/internal/schemas"
	"github.com/racs-hpc/hpcadmin-server/internal/services"
	"github.com/racs-hpc/hpcadmin-server/pkg/response"
	"gorm.io/gorm"
)

type PirgHandler struct {
	svc *services.PirgService
}

func NewPirgHandler(db *gorm.DB) *PirgHandler {
	return &PirgHandler{svc: services.NewPirgService(db)}
}

// List handles GET /pirgs. With a name query parameter it behaves as a
// single-pirg lookup, returning 404 when no such pirg exists.
func (h *PirgHandler) List(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		pirg, err := h.svc.GetByName(name)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, schemas.NewPirg(pirg))
		return
	}

	pirgs, err := h.svc.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]schemas.Pirg, 0, len(pirgs))
	for i := range pirgs {
		out = append(out, schemas.NewPirg(&pirgs[i]))
	}
	response.OK(c, out)
}

// GetByID handles GET /pirgs/:id.
func (h *PirgHandler) GetByID(c *gin.Context) {
	id, ok := h.pirgID(c)
	if !ok {
		return
	}
	pirg, err := h.svc.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, schemas.NewPirg(pirg))
}

// Create handles POST /pirgs. When a name query parameter is present
// and a pirg with that name already exists, the existing pirg is
// returned with 200 instead of attempting a create; callers use this as
// an existence probe before creating.
func (h *PirgHandler) Create(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		if pirg, err := h.svc.GetByName(name); err == nil {
			response.OK(c, schemas.NewPirg(pirg))
			return
		} else if !response.IsNotFound(err) {
			response.Error(c, err)
			return
		}
	}

	var req schemas.PirgCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pirg, err := h.svc.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schemas.NewPirg(pirg))
}

// Update handles PUT /pirgs/:id, reconciling name, owner, and both
// membership lists to the request.
func (h *PirgHandler) Update(c *gin.Context) {
	id, ok := h.pirgID(c)
	if !ok {
		return
	}

	var req schemas.PirgCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pirg, err := h.svc.Update(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, schemas.NewPirg(pirg))
}

// AddUser handles POST /pirgs/:id/users.
func (h *PirgHandler) AddUser(c *gin.Context) {
	h.membership(c, h.svc.AddUser)
}

// RemoveUser handles DELETE /pirgs/:id/users.
func (h *PirgHandler) RemoveUser(c *gin.Context) {
	h.membership(c, h.svc.RemoveUser)
}

// AddAdmin handles POST /pirgs/:id/admins.
func (h *PirgHandler) AddAdmin(c *gin.Context) {
	h.membership(c, h.svc.AddAdmin)
}

// RemoveAdmin handles DELETE /pirgs/:id/admins.
func (h *PirgHandler) RemoveAdmin(c *gin.Context) {
	h.membership(c, h.svc.RemoveAdmin)
}

// AddGroup handles POST /pirgs/:id/groups, atomically creating a group
// under the pirg and attaching the listed members.
func (h *PirgHandler) AddGroup(c *gin.Context) {
	id, ok := h.pirgID(c)
	if !ok {
		return
	}

	var req schemas.PirgAddGroup
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	group, err := h.svc.AddGroup(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schemas.NewGroup(group))
}

// ListGroups handles GET /pirgs/:id/groups.
func (h *PirgHandler) ListGroups(c *gin.Context) {
	id, ok := h.pirgID(c)
	if !ok {
		return
	}

	groups, err := h.svc.ListGroups(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]schemas.Group, 0, len(groups))
	for i := range groups {
		out = append(out, schemas.NewGroup(&groups[i]))
	}
	response.OK(c, out)
}

// FindGroup handles POST /pirgs/:id/groups/find, looking up a group by
// name within the pirg.
func (h *PirgHandler) FindGroup(c *gin.Context) {
	id, ok := h.pirgID(c)
	if !ok {
		return
	}

	var req schemas.PirgGroupName
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	group, err := h.svc.GetGroupByName(id, req.GroupName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, schemas.NewGroup(group))
}

func (h *PirgHandler) pirgID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid pirg id")
		return 0, false
	}
	return uint(id), true
}

func (h *PirgHandler) membership(c *gin.Context, op func(pirgID, userID uint) (*models.Pirg, error)) {
	id, ok := h.pirgID(c)
	if !ok {
		return
	}

	var req schemas.UserID
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pirg, err := op(id, req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, schemas.NewPirg(pirg))
}
