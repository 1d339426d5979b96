package models

import (
	"time"
)

// Role values recognized on API keys.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// APIKey is a pre-shared key an operator tool presents in the X-API-Key
// header. The role controls access to mutating operations.
type APIKey struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100;not null" json:"key"`
	Role      string    `gorm:"size:50;default:user" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (APIKey) TableName() string { return "api_keys" }
