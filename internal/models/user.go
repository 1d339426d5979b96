package models

import (
	"time"
)

// User represents a cluster account holder.
// Users are never hard-deleted; the tables are an append-only
// organizational record.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Firstname string    `gorm:"size:100;not null" json:"firstname"`
	Lastname  string    `gorm:"size:100;not null" json:"lastname"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	IsPI      bool      `gorm:"column:is_pi;default:false" json:"is_pi"`
	SponsorID *uint     `json:"sponsor_id"`
	Sponsor   *User     `gorm:"foreignKey:SponsorID" json:"sponsor,omitempty"`
	Pirgs     []Pirg    `gorm:"many2many:pirg_users" json:"pirgs,omitempty"`
	Groups    []Group   `gorm:"many2many:group_users" json:"groups,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
