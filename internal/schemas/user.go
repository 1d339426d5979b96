// Package schemas defines the request and response contracts of the
// administrative API, independent of the storage representation. Each
// entity has three tiers: a Base contract shared by create and read, a
// Create contract adding required foreign-key ids, and a Signature
// contract (id plus one human-readable field) used when the entity is
// embedded in another entity's full representation. Full representations
// only ever embed signatures, never other full representations, so
// responses cannot expand recursively.
//
// Conversion from storage records is always an explicit function call;
// nothing in this package is populated by reflection.
package schemas

import (
	"time"

	"github.com/racs-hpc/hpcadmin-server/internal/models"
)

// UserBase holds the user fields common to create requests and read
// responses.
type UserBase struct {
	Username  string `json:"username" binding:"required"`
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"required"`
	IsPI      bool   `json:"is_pi"`
}

// UserCreate is the request body for creating a user. The sponsor, when
// present, must reference an existing user.
type UserCreate struct {
	UserBase
	SponsorID *uint `json:"sponsor_id"`
}

// UserSignature is the minimal embeddable representation of a user.
type UserSignature struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// User is the full read representation.
type User struct {
	UserBase
	ID        uint             `json:"id"`
	Sponsor   *UserSignature   `json:"sponsor"`
	Pirgs     []PirgSignature  `json:"pirgs"`
	Groups    []GroupSignature `json:"groups"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// UserID is a bare-id envelope for operations whose only input is a
// reference to one user.
type UserID struct {
	UserID uint `json:"user_id" binding:"required"`
}

// NewUserSignature converts a storage record to its signature.
func NewUserSignature(m *models.User) UserSignature {
	return UserSignature{ID: m.ID, Username: m.Username}
}

// NewUserSignatures converts a list of storage records, normalizing nil
// to an empty list so responses render [] rather than null.
func NewUserSignatures(ms []models.User) []UserSignature {
	sigs := make([]UserSignature, 0, len(ms))
	for i := range ms {
		sigs = append(sigs, NewUserSignature(&ms[i]))
	}
	return sigs
}

// NewUser converts a storage record to the full read representation.
// Associations are expected to be preloaded by the caller.
func NewUser(m *models.User) User {
	u := User{
		UserBase: UserBase{
			Username:  m.Username,
			Firstname: m.Firstname,
			Lastname:  m.Lastname,
			Email:     m.Email,
			IsPI:      m.IsPI,
		},
		ID:        m.ID,
		Pirgs:     NewPirgSignatures(m.Pirgs),
		Groups:    NewGroupSignatures(m.Groups),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Sponsor != nil {
		sig := NewUserSignature(m.Sponsor)
		u.Sponsor = &sig
	}
	return u
}
