package schemas

import (
	"time"

	"github.com/racs-hpc/hpcadmin-server/internal/models"
)

// GroupBase holds the group fields common to create requests and read
// responses.
type GroupBase struct {
	Name string `json:"name" binding:"required"`
}

// GroupCreate is the request body for creating a group directly. The
// parent pirg is required and immutable after creation.
type GroupCreate struct {
	GroupBase
	PirgID  uint   `json:"pirg_id" binding:"required"`
	UserIDs []uint `json:"user_ids"`
}

// GroupSignature is the minimal embeddable representation of a group.
type GroupSignature struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Group is the full read representation. The parent pirg appears as a
// signature only.
type Group struct {
	GroupBase
	ID        uint            `json:"id"`
	Pirg      PirgSignature   `json:"pirg"`
	Users     []UserSignature `json:"users"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewGroupSignature converts a storage record to its signature.
func NewGroupSignature(m *models.Group) GroupSignature {
	return GroupSignature{ID: m.ID, Name: m.Name}
}

// NewGroupSignatures converts a list of storage records, normalizing nil
// to an empty list.
func NewGroupSignatures(ms []models.Group) []GroupSignature {
	sigs := make([]GroupSignature, 0, len(ms))
	for i := range ms {
		sigs = append(sigs, NewGroupSignature(&ms[i]))
	}
	return sigs
}

// NewGroup converts a storage record to the full read representation.
// Pirg and Users are expected to be preloaded.
func NewGroup(m *models.Group) Group {
	return Group{
		GroupBase: GroupBase{Name: m.Name},
		ID:        m.ID,
		Pirg:      NewPirgSignature(&m.Pirg),
		Users:     NewUserSignatures(m.Users),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
