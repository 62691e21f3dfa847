package settings

import "github.com/jeenmata/impex/internal/domain/settings"

// UpdateSettingsRequest is a partial change to the site settings. Omitted
// fields are kept; feature flags are merged into the current set.
type UpdateSettingsRequest struct {
	CompanyName    *string         `json:"company_name" binding:"omitempty,min=1,max=200"`
	Tagline        *string         `json:"tagline" binding:"omitempty,max=300"`
	ContactEmail   *string         `json:"contact_email" binding:"omitempty,email"`
	ContactPhone   *string         `json:"contact_phone" binding:"omitempty,max=50"`
	ContactAddress *string         `json:"contact_address" binding:"omitempty,max=500"`
	FeatureFlags   map[string]bool `json:"feature_flags"`
}

func (r UpdateSettingsRequest) toDomain() settings.Update {
	return settings.Update{
		CompanyName:    r.CompanyName,
		Tagline:        r.Tagline,
		ContactEmail:   r.ContactEmail,
		ContactPhone:   r.ContactPhone,
		ContactAddress: r.ContactAddress,
		FeatureFlags:   r.FeatureFlags,
	}
}
