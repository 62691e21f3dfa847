package models

import (
	"time"

	"github.com/jeenmata/impex/internal/domain/analytics"
)

// PageVisitModel is the persistence model for a PageVisit. Visits are
// append-only and have no updated_date column.
type PageVisitModel struct {
	ID          string    `gorm:"type:varchar(64);primaryKey"`
	Path        string    `gorm:"type:varchar(500);not null;index"`
	Page        string    `gorm:"type:varchar(100)"`
	UserEmail   string    `gorm:"type:varchar(255);index"`
	UserAgent   string    `gorm:"type:varchar(512)"`
	CreatedDate time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PageVisitModel) TableName() string {
	return analytics.TablePageVisits
}

// ToDomain converts the persistence model to a domain PageVisit.
func (m *PageVisitModel) ToDomain() *analytics.PageVisit {
	return &analytics.PageVisit{
		ID:          m.ID,
		Path:        m.Path,
		Page:        m.Page,
		UserEmail:   m.UserEmail,
		UserAgent:   m.UserAgent,
		CreatedDate: m.CreatedDate,
	}
}

// FromDomain populates the persistence model from a domain PageVisit.
func (m *PageVisitModel) FromDomain(v *analytics.PageVisit) {
	m.ID = v.ID
	m.Path = v.Path
	m.Page = v.Page
	m.UserEmail = v.UserEmail
	m.UserAgent = v.UserAgent
	m.CreatedDate = v.CreatedDate
}
