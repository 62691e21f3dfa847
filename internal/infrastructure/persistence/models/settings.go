package models

import (
	"github.com/jeenmata/impex/internal/domain/settings"
)

// SiteSettingsModel is the persistence model for the SiteSettings row.
type SiteSettingsModel struct {
	BaseModel
	CompanyName    string `gorm:"type:varchar(200);not null"`
	Tagline        string `gorm:"type:varchar(300)"`
	ContactEmail   string `gorm:"type:varchar(255)"`
	ContactPhone   string `gorm:"type:varchar(50)"`
	ContactAddress string `gorm:"type:text"`
	FeatureFlags   string `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (SiteSettingsModel) TableName() string {
	return settings.TableSiteSettings
}

// ToDomain converts the persistence model to domain SiteSettings.
func (m *SiteSettingsModel) ToDomain() *settings.SiteSettings {
	s := &settings.SiteSettings{
		BaseEntity:     m.BaseModel.ToDomain(),
		CompanyName:    m.CompanyName,
		Tagline:        m.Tagline,
		ContactEmail:   m.ContactEmail,
		ContactPhone:   m.ContactPhone,
		ContactAddress: m.ContactAddress,
	}
	decodeJSON(m.FeatureFlags, "feature_flags", m.ID, &s.FeatureFlags)
	return s
}

// FromDomain populates the persistence model from domain SiteSettings.
func (m *SiteSettingsModel) FromDomain(s *settings.SiteSettings) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.CompanyName = s.CompanyName
	m.Tagline = s.Tagline
	m.ContactEmail = s.ContactEmail
	m.ContactPhone = s.ContactPhone
	m.ContactAddress = s.ContactAddress
	m.FeatureFlags = encodeJSON(s.FeatureFlags, "{}")
}
