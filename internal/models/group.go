package models

import (
	"time"
)

// Group represents a sub-team nested under exactly one Pirg. The parent
// pirg is immutable after creation; group names are unique per pirg.
type Group struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_groups_pirg_name" json:"name"`
	PirgID    uint      `gorm:"not null;uniqueIndex:idx_groups_pirg_name" json:"pirg_id"`
	Pirg      Pirg      `gorm:"foreignKey:PirgID" json:"pirg"`
	Users     []User    `gorm:"many2many:group_users" json:"users"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Group) TableName() string { return "groups" }
