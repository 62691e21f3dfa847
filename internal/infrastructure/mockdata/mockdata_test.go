package mockdata

import (
	"testing"

	"github.com/jeenmata/impex/internal/domain/settings"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleCounts(t *testing.T) {
	assert.Len(t, Products(), 3)
	assert.Len(t, Brands(), 3)
	assert.Len(t, Categories(), 3)
	assert.Len(t, Settings(), 1)
	assert.Len(t, Users(), 2)
	assert.Len(t, Orders(), 1)
	assert.Len(t, Shipments(), 2)
	assert.Len(t, Applications(), 2)
	assert.Empty(t, PageVisits())
}

func TestProductsAreValid(t *testing.T) {
	brands := map[string]bool{}
	for _, b := range Brands() {
		brands[b.Name] = true
	}
	for _, p := range Products() {
		t.Run(p.Slug, func(t *testing.T) {
			assert.True(t, brands[p.Brand], "unknown brand %s", p.Brand)
			require.NotEmpty(t, p.Variants)
			for _, v := range p.Variants {
				assert.NoError(t, v.Validate())
			}
		})
	}
}

func TestOrderTotalMatchesItems(t *testing.T) {
	o := Orders()[0]
	total := decimal.Zero
	for _, item := range o.ProductItems {
		total = total.Add(item.Subtotal())
	}
	assert.True(t, total.Equal(o.TotalAmountNPR), "total %s != %s", total, o.TotalAmountNPR)
}

func TestFreshCopies(t *testing.T) {
	a := Products()
	a[0].Name = "changed"
	assert.NotEqual(t, "changed", Products()[0].Name)

	s := SiteSettings()
	s.FeatureFlags[settings.FlagAdvancedAnalytics] = true
	fresh := SiteSettings()
	assert.False(t, fresh.IsEnabled(settings.FlagAdvancedAnalytics))
	assert.True(t, fresh.IsEnabled(settings.FlagBulkProductUpload))
}
