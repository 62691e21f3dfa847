package bulk

import (
	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/jeenmata/impex/internal/domain/logistics"
)

// EntityType is a table that accepts bulk uploads
type EntityType string

const (
	EntityProducts  EntityType = "products"
	EntityBrands    EntityType = "brands"
	EntityShipments EntityType = "shipments"
)

// EntityTypes lists the uploadable entity types
func EntityTypes() []EntityType {
	return []EntityType{EntityProducts, EntityBrands, EntityShipments}
}

// ParseEntityType accepts "products", "product" or "Product" style names
func ParseEntityType(s string) (EntityType, error) {
	switch s {
	case "products", "product", "Product", "Products":
		return EntityProducts, nil
	case "brands", "brand", "Brand", "Brands":
		return EntityBrands, nil
	case "shipments", "shipment", "Shipment", "Shipments":
		return EntityShipments, nil
	}
	return "", ErrUnsupportedEntityType
}

// FieldType is the expected type of a column
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeEnum    FieldType = "enum"
	TypeDate    FieldType = "date"
	TypeList    FieldType = "list"
)

// DateLayout is the accepted date format
const DateLayout = "2006-01-02"

// FieldSpec describes one column of an upload
type FieldSpec struct {
	Name        string    `json:"name"`
	Required    bool      `json:"required"`
	Type        FieldType `json:"type"`
	Enum        []string  `json:"enum,omitempty"`
	Default     string    `json:"default,omitempty"`
	Description string    `json:"description,omitempty"`
	// NonNegative rejects numbers below zero
	NonNegative bool `json:"non_negative,omitempty"`
	// Integer numbers must fit a 32-bit integer column
	Integer bool `json:"integer,omitempty"`
}

// Schema is the ordered column list of an entity type
type Schema struct {
	Entity EntityType  `json:"entity"`
	Fields []FieldSpec `json:"fields"`
}

// Columns returns the column names in template order
func (s Schema) Columns() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name
	}
	return out
}

// Field returns the definition of a column
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

func stockStatuses() []string {
	out := make([]string, len(catalog.StockStatuses))
	for i, s := range catalog.StockStatuses {
		out[i] = string(s)
	}
	return out
}

func shipmentStatuses() []string {
	out := make([]string, len(logistics.ShipmentStatuses))
	for i, s := range logistics.ShipmentStatuses {
		out[i] = string(s)
	}
	return out
}

var schemas = map[EntityType]Schema{
	EntityProducts: {
		Entity: EntityProducts,
		Fields: []FieldSpec{
			{Name: "name", Required: true, Type: TypeString},
			{Name: "brand", Required: true, Type: TypeString},
			{Name: "category", Required: true, Type: TypeString},
			{Name: "slug", Type: TypeString},
			{Name: "description", Type: TypeString},
			{Name: "featured", Type: TypeBoolean, Default: "false"},
			{Name: "images", Type: TypeList, Description: "Comma-separated image URLs"},
			{Name: "size", Type: TypeString},
			{Name: "packaging", Type: TypeString},
			{Name: "estimated_price_npr", Type: TypeNumber, NonNegative: true},
			{Name: "stock_status", Required: true, Type: TypeEnum, Enum: stockStatuses()},
		},
	},
	EntityBrands: {
		Entity: EntityBrands,
		Fields: []FieldSpec{
			{Name: "name", Required: true, Type: TypeString},
			{Name: "slug", Type: TypeString},
			{Name: "description", Type: TypeString},
			{Name: "logo", Type: TypeString},
			{Name: "origin_country", Type: TypeString},
			{Name: "established_year", Type: TypeNumber, NonNegative: true, Integer: true},
			{Name: "specialty", Type: TypeString},
			{Name: "active", Type: TypeBoolean, Default: "true"},
			{Name: "sort_order", Type: TypeNumber, Integer: true},
		},
	},
	EntityShipments: {
		Entity: EntityShipments,
		Fields: []FieldSpec{
			{Name: "tracking_number", Required: true, Type: TypeString},
			{Name: "origin_country", Required: true, Type: TypeEnum, Enum: []string{string(logistics.OriginChina), string(logistics.OriginIndia)}},
			{Name: "status", Required: true, Type: TypeEnum, Enum: shipmentStatuses()},
			{Name: "eta_date", Required: true, Type: TypeDate, Description: "Format: YYYY-MM-DD"},
			{Name: "product_names", Type: TypeList, Description: "Comma-separated product names"},
			{Name: "port_name", Type: TypeString},
		},
	},
}

// SchemaFor returns the schema of an entity type
func SchemaFor(entity EntityType) (Schema, error) {
	s, ok := schemas[entity]
	if !ok {
		return Schema{}, ErrUnsupportedEntityType
	}
	return s, nil
}
