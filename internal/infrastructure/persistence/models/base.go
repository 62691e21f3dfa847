package models

import (
	"encoding/json"
	"time"

	"github.com/jeenmata/impex/internal/domain/shared"
	"go.uber.org/zap"
)

var modelLogger = zap.L().Named("persistence.models")

// BaseModel provides the id and timestamp columns shared by every table
type BaseModel struct {
	ID          string    `gorm:"type:varchar(64);primaryKey"`
	CreatedDate time.Time `gorm:"not null;index"`
	UpdatedDate time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:          m.ID,
		CreatedDate: m.CreatedDate,
		UpdatedDate: m.UpdatedDate,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedDate = e.CreatedDate
	m.UpdatedDate = e.UpdatedDate
}

// All returns every model so callers can auto-migrate the schema.
func All() []any {
	return []any{
		&ProductModel{},
		&BrandModel{},
		&CategoryModel{},
		&OrderModel{},
		&ShipmentModel{},
		&UserModel{},
		&DealerApplicationModel{},
		&SiteSettingsModel{},
		&PageVisitModel{},
	}
}

// toAggregate wraps the base columns in an aggregate root
func (m *BaseModel) toAggregate() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{BaseEntity: m.ToDomain()}
}

// encodeJSON serializes v for a jsonb column, falling back to empty when
// marshalling fails
func encodeJSON(v any, empty string) string {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return empty
	}
	return string(b)
}

// decodeJSON parses a jsonb column into dst. Malformed values are logged and
// leave dst untouched.
func decodeJSON(raw, column, id string, dst any) {
	if raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		modelLogger.Warn("failed to parse JSON column",
			zap.String("column", column),
			zap.String("id", id),
			zap.Error(err))
	}
}
