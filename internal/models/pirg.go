package models

import (
	"time"
)

// Pirg represents a Principal Investigator Research Group: one owner,
// zero or more admins, zero or more member users, and its sub-groups.
type Pirg struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	OwnerID   uint      `gorm:"not null" json:"owner_id"`
	Owner     User      `gorm:"foreignKey:OwnerID" json:"owner"`
	Admins    []User    `gorm:"many2many:pirg_admins" json:"admins"`
	Users     []User    `gorm:"many2many:pirg_users" json:"users"`
	Groups    []Group   `gorm:"foreignKey:PirgID" json:"groups"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Pirg) TableName() string { return "pirgs" }
