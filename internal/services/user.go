package services

import (
	"errors"
	"fmt"

	"github.com/racs-hpc/hpcadmin-server/internal/models"
	"github.com/racs-hpc/hpcadmin-server/internal/schemas"
	"github.com/racs-hpc/hpcadmin-server/pkg/logger"
	"github.com/racs-hpc/hpcadmin-server/pkg/response"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetByID returns the user with its sponsor, pirg, and group
// associations preloaded.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Sponsor").Preload("Pirgs").Preload("Groups").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewNotFound(fmt.Sprintf("no user with id %d", id))
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername returns the user matching the unique username.
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Sponsor").Preload("Pirgs").Preload("Groups").
		Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewNotFound(fmt.Sprintf("no user with username %q", username))
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users ordered by id.
func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Preload("Sponsor").Preload("Pirgs").Preload("Groups").Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Create validates the sponsor reference and username uniqueness, then
// persists the user. Nothing is persisted when validation fails.
func (s *UserService) Create(req *schemas.UserCreate) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict(fmt.Sprintf("user with username %q already exists", req.Username))
	}

	if req.SponsorID != nil {
		var sponsor models.User
		if err := s.db.First(&sponsor, *req.SponsorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewBadRequest(fmt.Sprintf("sponsor_id %d does not reference an existing user", *req.SponsorID))
			}
			return nil, err
		}
	}

	user := models.User{
		Username:  req.Username,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		IsPI:      req.IsPI,
		SponsorID: req.SponsorID,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	logger.Info().Str("username", user.Username).Uint("id", user.ID).Msg("created user")
	return s.GetByID(user.ID)
}

// Update replaces the user's base fields. The sponsor cannot be changed
// through this operation, and a user cannot be made its own sponsor.
func (s *UserService) Update(id uint, req *schemas.UserBase) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Username != user.Username {
		var count int64
		if err := s.db.Model(&models.User{}).Where("username = ? AND id != ?", req.Username, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, response.NewConflict(fmt.Sprintf("user with username %q already exists", req.Username))
		}
	}

	updates := map[string]interface{}{
		"username":  req.Username,
		"firstname": req.Firstname,
		"lastname":  req.Lastname,
		"email":     req.Email,
		"is_pi":     req.IsPI,
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	logger.Info().Uint("id", id).Msg("updated user")
	return s.GetByID(id)
}

// resolveUsers loads every referenced user, failing with a validation
// error naming the first dangling id. Used for owner_id, admin_ids,
// user_ids, and group member lists before any mutation is applied.
func resolveUsers(db *gorm.DB, ids []uint, field string) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewBadRequest(fmt.Sprintf("%s %d does not reference an existing user", field, id))
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}
