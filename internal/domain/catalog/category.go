package catalog

import (
	"regexp"
	"strings"

	"github.com/jeenmata/impex/internal/domain/shared"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Category groups products by kind of tool
type Category struct {
	shared.BaseEntity
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Active      bool   `json:"active"`
	SortOrder   int    `json:"sort_order"`
}

// CategoryInput carries the editable fields of a category
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
	Icon        string
	Color       string
	Active      bool
	SortOrder   int
}

// NewCategory creates a new category
func NewCategory(in CategoryInput) (*Category, error) {
	c := &Category{BaseEntity: shared.NewBaseEntity()}
	if err := c.apply(in); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the category's editable fields
func (c *Category) Update(in CategoryInput) error {
	if err := c.apply(in); err != nil {
		return err
	}
	c.Touch()
	return nil
}

func (c *Category) apply(in CategoryInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.NewValidationError("Category name is required")
	}
	if in.Color != "" && !hexColor.MatchString(in.Color) {
		return shared.NewValidationError("Category color must be a hex value like #3B82F6")
	}
	slug := shared.Slugify(in.Slug)
	if slug == "" {
		slug = shared.Slugify(name)
	}
	c.Name = name
	c.Slug = slug
	c.Description = strings.TrimSpace(in.Description)
	c.Icon = strings.TrimSpace(in.Icon)
	c.Color = in.Color
	c.Active = in.Active
	c.SortOrder = in.SortOrder
	return nil
}
