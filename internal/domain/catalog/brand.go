package catalog

import (
	"strings"

	"github.com/jeenmata/impex/internal/domain/shared"
)

// Brand is a manufacturer whose products the company imports
type Brand struct {
	shared.BaseEntity
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Description     string `json:"description"`
	Logo            string `json:"logo"`
	OriginCountry   string `json:"origin_country"`
	EstablishedYear int    `json:"established_year,omitempty"`
	Specialty       string `json:"specialty"`
	Active          bool   `json:"active"`
	SortOrder       int    `json:"sort_order"`
}

// BrandInput carries the editable fields of a brand
type BrandInput struct {
	Name            string
	Slug            string
	Description     string
	Logo            string
	OriginCountry   string
	EstablishedYear int
	Specialty       string
	Active          bool
	SortOrder       int
}

// NewBrand creates a new brand
func NewBrand(in BrandInput) (*Brand, error) {
	b := &Brand{BaseEntity: shared.NewBaseEntity()}
	if err := b.apply(in); err != nil {
		return nil, err
	}
	return b, nil
}

// Update replaces the brand's editable fields
func (b *Brand) Update(in BrandInput) error {
	if err := b.apply(in); err != nil {
		return err
	}
	b.Touch()
	return nil
}

func (b *Brand) apply(in BrandInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.NewValidationError("Brand name is required")
	}
	if in.EstablishedYear < 0 {
		return shared.NewValidationError("Established year cannot be negative")
	}
	slug := shared.Slugify(in.Slug)
	if slug == "" {
		slug = shared.Slugify(name)
	}
	b.Name = name
	b.Slug = slug
	b.Description = strings.TrimSpace(in.Description)
	b.Logo = strings.TrimSpace(in.Logo)
	b.OriginCountry = strings.TrimSpace(in.OriginCountry)
	b.EstablishedYear = in.EstablishedYear
	b.Specialty = strings.TrimSpace(in.Specialty)
	b.Active = in.Active
	b.SortOrder = in.SortOrder
	return nil
}
