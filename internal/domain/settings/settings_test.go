package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteSettings_IsEnabled(t *testing.T) {
	var nilSettings *SiteSettings
	assert.False(t, nilSettings.IsEnabled(FlagBulkProductUpload))

	s := &SiteSettings{FeatureFlags: map[string]bool{FlagBulkProductUpload: true, FlagAdvancedAnalytics: false}}
	assert.True(t, s.IsEnabled(FlagBulkProductUpload))
	assert.False(t, s.IsEnabled(FlagAdvancedAnalytics))
	assert.False(t, s.IsEnabled("unknown"))
}

func TestSiteSettings_Apply(t *testing.T) {
	s := &SiteSettings{CompanyName: "Jeen Mata Impex", Tagline: "Quality tools", FeatureFlags: map[string]bool{FlagBulkProductUpload: true}}
	phone := " +977-1-4567890 "

	require.NoError(t, s.Apply(Update{
		ContactPhone: &phone,
		FeatureFlags: map[string]bool{FlagAdvancedAnalytics: true},
	}))
	assert.Equal(t, "Jeen Mata Impex", s.CompanyName)
	assert.Equal(t, "+977-1-4567890", s.ContactPhone)
	assert.True(t, s.IsEnabled(FlagBulkProductUpload))
	assert.True(t, s.IsEnabled(FlagAdvancedAnalytics))

	empty := " "
	assert.Error(t, s.Apply(Update{CompanyName: &empty}))

	name := "Other"
	assert.Error(t, s.Apply(Update{CompanyName: &name, FeatureFlags: map[string]bool{"dark_mode": true}}))
	assert.Equal(t, "Jeen Mata Impex", s.CompanyName, "rejected updates change nothing")
}
