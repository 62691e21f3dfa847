package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("matches by code", func(t *testing.T) {
		err := NewNotFoundError("Product")
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Equal(t, "Product not found", err.Error())
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", NewDomainError("INVALID_STATE", "order is archived"))
		assert.True(t, errors.Is(err, ErrInvalidState))
		assert.False(t, errors.Is(err, ErrNotFound))
	})
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "FastDrill", "fastdrill"},
		{"spaces", "Gorkha Tool Kit", "gorkha-tool-kit"},
		{"multiple spaces", "Power   Tools", "power-tools"},
		{"punctuation", "Spider Angle Grinder (4\")", "spider-angle-grinder-4"},
		{"accents", "Café Crème", "cafe-creme"},
		{"trim", "  Drill  ", "drill"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestParseSort(t *testing.T) {
	field, desc := ParseSort("-created_date")
	assert.Equal(t, "created_date", field)
	assert.True(t, desc)

	field, desc = ParseSort("sort_order")
	assert.Equal(t, "sort_order", field)
	assert.False(t, desc)

	field, desc = ParseSort("")
	assert.Equal(t, "", field)
	assert.False(t, desc)
}

func TestQuery_Where(t *testing.T) {
	base := NewQuery("-created_date", 5)
	q := base.Where("active", true).Where("slug", "spider")

	assert.Nil(t, base.Filters)
	assert.Equal(t, map[string]any{"active": true, "slug": "spider"}, q.Filters)
	assert.Equal(t, 5, q.Limit)
}

type stockChanged struct {
	BaseDomainEvent
}

func TestBaseAggregateRoot_Events(t *testing.T) {
	root := NewBaseAggregateRoot()
	assert.NotEmpty(t, root.ID)
	assert.Empty(t, root.GetDomainEvents())

	root.AddDomainEvent(&stockChanged{NewBaseDomainEvent("StockChanged", "Product", root.ID)})
	events := root.GetDomainEvents()
	if assert.Len(t, events, 1) {
		assert.Equal(t, "StockChanged", events[0].EventType())
		assert.Equal(t, root.ID, events[0].AggregateID())
		assert.Equal(t, "Product", events[0].AggregateType())
		assert.NotEmpty(t, events[0].EventID())
		assert.False(t, events[0].OccurredAt().IsZero())
	}

	root.ClearDomainEvents()
	assert.Empty(t, root.GetDomainEvents())
}
