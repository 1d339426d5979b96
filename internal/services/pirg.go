package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/racs-hpc/hpcadmin-server/internal/models"
	"github.com/racs-hpc/hpcadmin-server/internal/schemas"
	"github.com/racs-hpc/hpcadmin-server/pkg/logger"
	"github.com/racs-hpc/hpcadmin-server/pkg/response"
	"gorm.io/gorm"
)

type PirgService struct {
	db *gorm.DB
}

func NewPirgService(db *gorm.DB) *PirgService {
	return &PirgService{db: db}
}

// ValidatePirgName enforces the naming convention for pirgs: lowercase
// alphanumeric, starting with a letter. The name becomes a unix group on
// the cluster, so the format is strict.
func ValidatePirgName(name string) error {
	if name == "" {
		return errors.New("pirg name must not be empty")
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return errors.New("pirg name must be lowercase alphanumeric")
		}
	}
	if name[0] < 'a' || name[0] > 'z' {
		return errors.New("pirg name must start with a letter")
	}
	return nil
}

// GetByID returns the pirg with owner, admins, users, and groups
// preloaded.
func (s *PirgService) GetByID(id uint) (*models.Pirg, error) {
	var pirg models.Pirg
	err := s.db.Preload("Owner").Preload("Admins").Preload("Users").Preload("Groups").
		First(&pirg, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewNotFound(fmt.Sprintf("no pirg with id %d", id))
	}
	if err != nil {
		return nil, err
	}
	return &pirg, nil
}

// GetByName returns the pirg matching the unique name.
func (s *PirgService) GetByName(name string) (*models.Pirg, error) {
	var pirg models.Pirg
	err := s.db.Preload("Owner").Preload("Admins").Preload("Users").Preload("Groups").
		Where("name = ?", name).First(&pirg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewNotFound(fmt.Sprintf("no pirg with name %q", name))
	}
	if err != nil {
		return nil, err
	}
	return &pirg, nil
}

// List returns all pirgs ordered by id.
func (s *PirgService) List() ([]models.Pirg, error) {
	var pirgs []models.Pirg
	err := s.db.Preload("Owner").Preload("Admins").Preload("Users").Preload("Groups").
		Order("id ASC").Find(&pirgs).Error
	if err != nil {
		return nil, err
	}
	return pirgs, nil
}

// Create validates the name format, name uniqueness, and every
// referenced user id, then persists the pirg and its admin and member
// associations in one transaction.
func (s *PirgService) Create(req *schemas.PirgCreate) (*models.Pirg, error) {
	if err := ValidatePirgName(req.Name); err != nil {
		return nil, response.NewBadRequest(err.Error())
	}

	var count int64
	if err := s.db.Model(&models.Pirg{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict(fmt.Sprintf("pirg with name %q already exists", req.Name))
	}

	owners, err := resolveUsers(s.db, []uint{req.OwnerID}, "owner_id")
	if err != nil {
		return nil, err
	}
	admins, err := resolveUsers(s.db, req.AdminIDs, "admin_id")
	if err != nil {
		return nil, err
	}
	users, err := resolveUsers(s.db, req.UserIDs, "user_id")
	if err != nil {
		return nil, err
	}

	pirg := models.Pirg{
		Name:    req.Name,
		OwnerID: owners[0].ID,
		Admins:  admins,
		Users:   users,
	}
	if err := s.db.Create(&pirg).Error; err != nil {
		return nil, err
	}

	logger.Info().Str("name", pirg.Name).Uint("id", pirg.ID).Msg("created pirg")
	return s.GetByID(pirg.ID)
}

// Update reconciles the pirg's name, owner, admin list, and member list
// to match the request: missing members are added, members absent from
// the request are removed.
func (s *PirgService) Update(id uint, req *schemas.PirgCreate) (*models.Pirg, error) {
	pirg, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := ValidatePirgName(req.Name); err != nil {
		return nil, response.NewBadRequest(err.Error())
	}
	if req.Name != pirg.Name {
		var count int64
		if err := s.db.Model(&models.Pirg{}).Where("name = ? AND id != ?", req.Name, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, response.NewConflict(fmt.Sprintf("pirg with name %q already exists", req.Name))
		}
	}

	owners, err := resolveUsers(s.db, []uint{req.OwnerID}, "owner_id")
	if err != nil {
		return nil, err
	}
	admins, err := resolveUsers(s.db, req.AdminIDs, "admin_id")
	if err != nil {
		return nil, err
	}
	users, err := resolveUsers(s.db, req.UserIDs, "user_id")
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(pirg).Updates(map[string]interface{}{
			"name":     req.Name,
			"owner_id": owners[0].ID,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(pirg).Association("Admins").Replace(admins); err != nil {
			return err
		}
		return tx.Model(pirg).Association("Users").Replace(users)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Uint("id", id).Msg("updated pirg")
	return s.GetByID(id)
}

// AddUser attaches a user as a pirg member.
func (s *PirgService) AddUser(pirgID, userID uint) (*models.Pirg, error) {
	return s.mutateMembership(pirgID, userID, "Users", true)
}

// RemoveUser detaches a user from the pirg member list.
func (s *PirgService) RemoveUser(pirgID, userID uint) (*models.Pirg, error) {
	return s.mutateMembership(pirgID, userID, "Users", false)
}

// AddAdmin attaches a user as a pirg admin.
func (s *PirgService) AddAdmin(pirgID, userID uint) (*models.Pirg, error) {
	return s.mutateMembership(pirgID, userID, "Admins", true)
}

// RemoveAdmin detaches a user from the pirg admin list.
func (s *PirgService) RemoveAdmin(pirgID, userID uint) (*models.Pirg, error) {
	return s.mutateMembership(pirgID, userID, "Admins", false)
}

// mutateMembership runs the existence checks and the association write
// in one transaction, bumping the pirg's updated_at alongside.
func (s *PirgService) mutateMembership(pirgID, userID uint, association string, add bool) (*models.Pirg, error) {
	pirg, err := s.GetByID(pirgID)
	if err != nil {
		return nil, err
	}
	users, err := resolveUsers(s.db, []uint{userID}, "user_id")
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		assoc := tx.Model(pirg).Association(association)
		if add {
			if err := assoc.Append(&users[0]); err != nil {
				return err
			}
		} else {
			if err := assoc.Delete(&users[0]); err != nil {
				return err
			}
		}
		return tx.Model(pirg).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Uint("pirg_id", pirgID).
		Uint("user_id", userID).
		Str("association", association).
		Bool("add", add).
		Msg("pirg membership changed")
	return s.GetByID(pirgID)
}

// AddGroup atomically creates a group under the pirg and attaches the
// listed members. The group name must be unique within the pirg.
func (s *PirgService) AddGroup(pirgID uint, req *schemas.PirgAddGroup) (*models.Group, error) {
	pirg, err := s.GetByID(pirgID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Group{}).Where("pirg_id = ? AND name = ?", pirgID, req.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict(fmt.Sprintf("group with name %q already exists in pirg %q", req.Name, pirg.Name))
	}

	users, err := resolveUsers(s.db, req.UserIDs, "user_id")
	if err != nil {
		return nil, err
	}

	group := models.Group{
		Name:   req.Name,
		PirgID: pirg.ID,
		Users:  users,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		return tx.Model(pirg).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("name", group.Name).Uint("pirg_id", pirgID).Msg("created group under pirg")

	var created models.Group
	if err := s.db.Preload("Pirg").Preload("Users").First(&created, group.ID).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// GetGroupByName returns the group with the given name under the pirg.
func (s *PirgService) GetGroupByName(pirgID uint, name string) (*models.Group, error) {
	if _, err := s.GetByID(pirgID); err != nil {
		return nil, err
	}
	var group models.Group
	err := s.db.Preload("Pirg").Preload("Users").
		Where("pirg_id = ? AND name = ?", pirgID, name).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewNotFound(fmt.Sprintf("no group with name %q in pirg %d", name, pirgID))
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// ListGroups returns all groups under the pirg.
func (s *PirgService) ListGroups(pirgID uint) ([]models.Group, error) {
	if _, err := s.GetByID(pirgID); err != nil {
		return nil, err
	}
	var groups []models.Group
	err := s.db.Preload("Pirg").Preload("Users").
		Where("pirg_id = ?", pirgID).Order("id ASC").Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}
