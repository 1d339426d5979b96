package schemas

import (
	"time"

	"github.com/racs-hpc/hpcadmin-server/internal/models"
)

// PirgBase holds the pirg fields common to create requests and read
// responses.
type PirgBase struct {
	Name string `json:"name" binding:"required"`
}

// PirgCreate is the request body for creating a pirg. AdminIDs and
// UserIDs may be absent or null; they normalize to empty at the
// validation boundary.
type PirgCreate struct {
	PirgBase
	OwnerID  uint   `json:"owner_id" binding:"required"`
	AdminIDs []uint `json:"admin_ids"`
	UserIDs  []uint `json:"user_ids"`
}

// PirgSignature is the minimal embeddable representation of a pirg.
type PirgSignature struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Pirg is the full read representation. Related users appear as
// signatures only.
type Pirg struct {
	PirgBase
	ID        uint             `json:"id"`
	Owner     UserSignature    `json:"owner"`
	Admins    []UserSignature  `json:"admins"`
	Users     []UserSignature  `json:"users"`
	Groups    []GroupSignature `json:"groups"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// PirgAddGroup is the request body for creating a group under a pirg and
// attaching members in one operation.
type PirgAddGroup struct {
	Name    string `json:"name" binding:"required"`
	UserIDs []uint `json:"user_ids"`
}

// PirgGroupName is the request body for looking up a group by name
// within a pirg.
type PirgGroupName struct {
	GroupName string `json:"group_name" binding:"required"`
}

// NewPirgSignature converts a storage record to its signature.
func NewPirgSignature(m *models.Pirg) PirgSignature {
	return PirgSignature{ID: m.ID, Name: m.Name}
}

// NewPirgSignatures converts a list of storage records, normalizing nil
// to an empty list.
func NewPirgSignatures(ms []models.Pirg) []PirgSignature {
	sigs := make([]PirgSignature, 0, len(ms))
	for i := range ms {
		sigs = append(sigs, NewPirgSignature(&ms[i]))
	}
	return sigs
}

// NewPirg converts a storage record to the full read representation.
// Owner, Admins, Users, and Groups are expected to be preloaded.
func NewPirg(m *models.Pirg) Pirg {
	return Pirg{
		PirgBase:  PirgBase{Name: m.Name},
		ID:        m.ID,
		Owner:     NewUserSignature(&m.Owner),
		Admins:    NewUserSignatures(m.Admins),
		Users:     NewUserSignatures(m.Users),
		Groups:    NewGroupSignatures(m.Groups),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
