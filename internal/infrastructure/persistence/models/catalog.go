package models

import (
	"github.com/jeenmata/impex/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(200);not null"`
	Slug        string `gorm:"type:varchar(200);not null;index"`
	Description string `gorm:"type:text"`
	Brand       string `gorm:"type:varchar(100);index"`
	Category    string `gorm:"type:varchar(100);index"`
	Images      string `gorm:"type:jsonb"`
	Variants    string `gorm:"type:jsonb"`
	Featured    bool   `gorm:"not null"`
	CreatedBy   string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return catalog.TableProducts
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseAggregateRoot: m.toAggregate(),
		Name:              m.Name,
		Slug:              m.Slug,
		Description:       m.Description,
		Brand:             m.Brand,
		Category:          m.Category,
		Featured:          m.Featured,
		CreatedBy:         m.CreatedBy,
	}
	decodeJSON(m.Images, "images", m.ID, &p.Images)
	decodeJSON(m.Variants, "variants", m.ID, &p.Variants)
	return p
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Slug = p.Slug
	m.Description = p.Description
	m.Brand = p.Brand
	m.Category = p.Category
	m.Images = encodeJSON(p.Images, "[]")
	m.Variants = encodeJSON(p.Variants, "[]")
	m.Featured = p.Featured
	m.CreatedBy = p.CreatedBy
}

// BrandModel is the persistence model for the Brand domain entity.
type BrandModel struct {
	BaseModel
	Name            string `gorm:"type:varchar(100);not null"`
	Slug            string `gorm:"type:varchar(100);not null;index"`
	Description     string `gorm:"type:text"`
	Logo            string `gorm:"type:text"`
	OriginCountry   string `gorm:"type:varchar(50)"`
	EstablishedYear int
	Specialty       string `gorm:"type:varchar(200)"`
	Active          bool   `gorm:"not null"`
	SortOrder       int    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BrandModel) TableName() string {
	return catalog.TableBrands
}

// ToDomain converts the persistence model to a domain Brand entity.
func (m *BrandModel) ToDomain() *catalog.Brand {
	return &catalog.Brand{
		BaseEntity:      m.BaseModel.ToDomain(),
		Name:            m.Name,
		Slug:            m.Slug,
		Description:     m.Description,
		Logo:            m.Logo,
		OriginCountry:   m.OriginCountry,
		EstablishedYear: m.EstablishedYear,
		Specialty:       m.Specialty,
		Active:          m.Active,
		SortOrder:       m.SortOrder,
	}
}

// FromDomain populates the persistence model from a domain Brand entity.
func (m *BrandModel) FromDomain(b *catalog.Brand) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Name = b.Name
	m.Slug = b.Slug
	m.Description = b.Description
	m.Logo = b.Logo
	m.OriginCountry = b.OriginCountry
	m.EstablishedYear = b.EstablishedYear
	m.Specialty = b.Specialty
	m.Active = b.Active
	m.SortOrder = b.SortOrder
}

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null"`
	Slug        string `gorm:"type:varchar(100);not null;index"`
	Description string `gorm:"type:text"`
	Icon        string `gorm:"type:varchar(50)"`
	Color       string `gorm:"type:varchar(7)"`
	Active      bool   `gorm:"not null"`
	SortOrder   int    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return catalog.TableCategories
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Icon:        m.Icon,
		Color:       m.Color,
		Active:      m.Active,
		SortOrder:   m.SortOrder,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Slug = c.Slug
	m.Description = c.Description
	m.Icon = c.Icon
	m.Color = c.Color
	m.Active = c.Active
	m.SortOrder = c.SortOrder
}
