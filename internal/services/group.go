package services

import (
	"errors"
	"fmt"

	"github.com/racs-hpc/hpcadmin-server/internal/models"
	"github.com/racs-hpc/hpcadmin-server/internal/schemas"
	"github.com/racs-hpc/hpcadmin-server/pkg/response"
	"gorm.io/gorm"
)

type GroupService struct {
	db    *gorm.DB
	pirgs *PirgService
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db, pirgs: NewPirgService(db)}
}

// GetByID returns the group with its parent pirg and members preloaded.
func (s *GroupService) GetByID(id uint) (*models.Group, error) {
	var group models.Group
	err := s.db.Preload("Pirg").Preload("Users").First(&group, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewNotFound(fmt.Sprintf("no group with id %d", id))
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// Create validates the parent pirg and member ids, then creates the
// group. Delegates to the pirg service so the create-and-attach path is
// the same whether the group arrives via GroupCreate or PirgAddGroup.
func (s *GroupService) Create(req *schemas.GroupCreate) (*models.Group, error) {
	return s.pirgs.AddGroup(req.PirgID, &schemas.PirgAddGroup{
		Name:    req.Name,
		UserIDs: req.UserIDs,
	})
}
