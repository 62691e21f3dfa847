// Package settings holds the site-wide configuration editable by admins.
package settings

import (
	"strings"

	"github.com/jeenmata/impex/internal/domain/shared"
)

// TableSiteSettings is the remote table holding the settings row
const TableSiteSettings = "site_settings"

// Known feature flags
const (
	FlagWhatsAppNotifications  = "whatsapp_notifications"
	FlagDealerSelfRegistration = "dealer_self_registration"
	FlagBulkProductUpload      = "bulk_product_upload"
	FlagAdvancedAnalytics      = "advanced_analytics"
)

// KnownFlags lists every feature flag the storefront checks
var KnownFlags = []string{
	FlagWhatsAppNotifications,
	FlagDealerSelfRegistration,
	FlagBulkProductUpload,
	FlagAdvancedAnalytics,
}

// IsKnownFlag reports whether flag is one of KnownFlags
func IsKnownFlag(flag string) bool {
	for _, f := range KnownFlags {
		if f == flag {
			return true
		}
	}
	return false
}

// SiteSettings is the singleton row of company details and feature flags
type SiteSettings struct {
	shared.BaseEntity
	CompanyName    string          `json:"company_name"`
	Tagline        string          `json:"tagline"`
	ContactEmail   string          `json:"contact_email"`
	ContactPhone   string          `json:"contact_phone"`
	ContactAddress string          `json:"contact_address"`
	FeatureFlags   map[string]bool `json:"feature_flags"`
}

// IsEnabled reports whether a feature flag is switched on. Unknown flags are off.
func (s *SiteSettings) IsEnabled(flag string) bool {
	if s == nil || s.FeatureFlags == nil {
		return false
	}
	return s.FeatureFlags[flag]
}

// Update carries a partial settings change. Nil fields are left as they are;
// flags are merged into the existing set.
type Update struct {
	CompanyName    *string
	Tagline        *string
	ContactEmail   *string
	ContactPhone   *string
	ContactAddress *string
	FeatureFlags   map[string]bool
}

// Apply merges an update into the settings
func (s *SiteSettings) Apply(u Update) error {
	for k := range u.FeatureFlags {
		if !IsKnownFlag(k) {
			return shared.NewValidationError("Unknown feature flag: " + k)
		}
	}
	if u.CompanyName != nil {
		name := strings.TrimSpace(*u.CompanyName)
		if name == "" {
			return shared.NewValidationError("Company name cannot be empty")
		}
		s.CompanyName = name
	}
	setIf(&s.Tagline, u.Tagline)
	setIf(&s.ContactEmail, u.ContactEmail)
	setIf(&s.ContactPhone, u.ContactPhone)
	setIf(&s.ContactAddress, u.ContactAddress)
	if len(u.FeatureFlags) > 0 {
		flags := make(map[string]bool, len(s.FeatureFlags)+len(u.FeatureFlags))
		for k, v := range s.FeatureFlags {
			flags[k] = v
		}
		for k, v := range u.FeatureFlags {
			flags[k] = v
		}
		s.FeatureFlags = flags
	}
	s.Touch()
	return nil
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// Repository persists the settings row
type Repository = shared.Repository[SiteSettings]
