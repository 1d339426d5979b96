package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/racs-hpc/hpcadmin-server/internal/schemas"
	"github.com/racs-hpc/hpcadmin-server/internal/services"
	"github.com/racs-hpc/hpcadmin-server/pkg/response"
	"gorm.io/gorm"
)

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{svc: services.NewUserService(db)}
}

// List handles GET /users. With a username query parameter it behaves
// as a single-user lookup, returning 404 when no such user exists; this
// is the probe the seeding client relies on.
func (h *UserHandler) List(c *gin.Context) {
	if username := c.Query("username"); username != "" {
		user, err := h.svc.GetByUsername(username)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, schemas.NewUser(user))
		return
	}

	users, err := h.svc.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]schemas.User, 0, len(users))
	for i := range users {
		out = append(out, schemas.NewUser(&users[i]))
	}
	response.OK(c, out)
}

// GetByID handles GET /users/:id.
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	user, err := h.svc.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, schemas.NewUser(user))
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	var req schemas.UserCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.svc.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schemas.NewUser(user))
}

// Update handles PUT /users/:id, replacing the base fields.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req schemas.UserBase
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.svc.Update(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, schemas.NewUser(user))
}
