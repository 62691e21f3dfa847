package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all storefront records
type Entity interface {
	GetID() string
	SetID(id string)
	Stamp(created, updated time.Time)
}

// BaseEntity provides common fields for all entities. The JSON names follow
// the column names used by the remote store.
type BaseEntity struct {
	ID          string    `json:"id"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() string {
	return e.ID
}

// SetID sets the entity ID
func (e *BaseEntity) SetID(id string) {
	e.ID = id
}

// Stamp overwrites both timestamps
func (e *BaseEntity) Stamp(created, updated time.Time) {
	e.CreatedDate = created
	e.UpdatedDate = updated
}

// Touch records a modification
func (e *BaseEntity) Touch() {
	e.UpdatedDate = time.Now()
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:          uuid.NewString(),
		CreatedDate: now,
		UpdatedDate: now,
	}
}
