package bulk

import (
	"time"

	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/jeenmata/impex/internal/domain/logistics"
	"github.com/jeenmata/impex/internal/domain/shared"
	bulkfile "github.com/jeenmata/impex/internal/infrastructure/bulk"
	"github.com/shopspring/decimal"
)

// Import defaults for blank variant cells
const (
	DefaultVariantSize      = "Standard"
	DefaultVariantPackaging = "Unit"
)

type productGroup struct {
	name string
	rows []bulkfile.Record
}

// groupByName collects product rows sharing a name, in first-seen order
func groupByName(records []bulkfile.Record) []*productGroup {
	index := make(map[string]*productGroup)
	var groups []*productGroup
	for _, rec := range records {
		name := rec.Get("name")
		g, ok := index[name]
		if !ok {
			g = &productGroup{name: name}
			index[name] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, rec)
	}
	return groups
}

// productFromGroup builds one product from its rows. Product level fields
// come from the first row; every row contributes a variant.
func productFromGroup(g *productGroup, createdBy string) (*catalog.Product, error) {
	first := g.rows[0]
	slug := shared.Slugify(first.Get("slug"))
	if slug == "" {
		slug = shared.Slugify(g.name)
	}
	featured, _ := bulkfile.ParseBool(first.Get("featured"))

	variants := make([]catalog.ProductVariant, 0, len(g.rows))
	for i, rec := range g.rows {
		v, err := variantFromRecord(rec, slug, i)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}

	return catalog.NewProduct(catalog.ProductInput{
		Name:        g.name,
		Slug:        slug,
		Description: first.Get("description"),
		Brand:       first.Get("brand"),
		Category:    first.Get("category"),
		Images:      bulkfile.SplitList(first.Get("images")),
		Variants:    variants,
		Featured:    featured,
		CreatedBy:   createdBy,
	})
}

func variantFromRecord(rec bulkfile.Record, slug string, index int) (catalog.ProductVariant, error) {
	size := rec.Get("size")
	if size == "" {
		size = DefaultVariantSize
	}
	packaging := rec.Get("packaging")
	if packaging == "" {
		packaging = DefaultVariantPackaging
	}
	price := decimal.Zero
	if raw := rec.Get("estimated_price_npr"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return catalog.ProductVariant{}, shared.NewValidationError("Invalid price: " + raw)
		}
		price = d
	}
	stock := catalog.StockStatus(rec.Get("stock_status"))
	if stock == "" {
		stock = catalog.StockInStock
	}
	return catalog.ProductVariant{
		ID:                catalog.VariantID(slug, size, packaging, index),
		Size:              size,
		Packaging:         packaging,
		EstimatedPriceNPR: price,
		StockStatus:       stock,
	}, nil
}

func brandFromRecord(rec bulkfile.Record) (*catalog.Brand, error) {
	active := true
	if raw := rec.Get("active"); raw != "" {
		active, _ = bulkfile.ParseBool(raw)
	}
	year, err := intCell(rec, "established_year")
	if err != nil {
		return nil, err
	}
	sortOrder, err := intCell(rec, "sort_order")
	if err != nil {
		return nil, err
	}
	return catalog.NewBrand(catalog.BrandInput{
		Name:            rec.Get("name"),
		Slug:            rec.Get("slug"),
		Description:     rec.Get("description"),
		Logo:            rec.Get("logo"),
		OriginCountry:   rec.Get("origin_country"),
		EstablishedYear: year,
		Specialty:       rec.Get("specialty"),
		Active:          active,
		SortOrder:       sortOrder,
	})
}

func shipmentFromRecord(rec bulkfile.Record, now time.Time) (*logistics.Shipment, error) {
	var eta *time.Time
	if raw := rec.Get("eta_date"); raw != "" {
		t, err := time.Parse(bulkfile.DateLayout, raw)
		if err != nil {
			return nil, shared.NewValidationError("Invalid ETA date: " + raw)
		}
		eta = &t
	}
	return logistics.NewShipment(logistics.ShipmentInput{
		TrackingNumber: rec.Get("tracking_number"),
		OriginCountry:  logistics.OriginCountry(rec.Get("origin_country")),
		Status:         logistics.ShipmentStatus(rec.Get("status")),
		ETADate:        eta,
		ProductNames:   bulkfile.SplitList(rec.Get("product_names")),
		PortName:       rec.Get("port_name"),
	}, now)
}

// intCell reads a whole number; "1995.0" is accepted as 1995
func intCell(rec bulkfile.Record, column string) (int, error) {
	raw := rec.Get(column)
	if raw == "" {
		return 0, nil
	}
	n, err := bulkfile.ParseInt(raw)
	if err != nil {
		return 0, shared.NewValidationError("Invalid number for " + column + ": " + raw)
	}
	return n, nil
}
