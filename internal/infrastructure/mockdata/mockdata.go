// Package mockdata holds the sample rows served while the database is not
// available. Every function returns a fresh copy so that callers may mutate
// the result.
package mockdata

import (
	"time"

	"github.com/jeenmata/impex/internal/domain/analytics"
	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/jeenmata/impex/internal/domain/identity"
	"github.com/jeenmata/impex/internal/domain/logistics"
	"github.com/jeenmata/impex/internal/domain/settings"
	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/jeenmata/impex/internal/domain/trade"
	"github.com/shopspring/decimal"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic("mockdata: bad timestamp " + s)
	}
	return t
}

func day(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic("mockdata: bad date " + s)
	}
	return &t
}

func base(id, created, updated string) shared.BaseEntity {
	return shared.BaseEntity{ID: id, CreatedDate: at(created), UpdatedDate: at(updated)}
}

func root(id, created, updated string) shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{BaseEntity: base(id, created, updated)}
}

func npr(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

const epoch = "2024-01-01T00:00:00Z"

// Products returns the sample catalog
func Products() []catalog.Product {
	return []catalog.Product{
		{
			BaseAggregateRoot: root("prod_001", "2024-01-15T10:30:00Z", "2024-01-20T14:15:00Z"),
			Name:              "FastDrill Professional 18V Cordless Drill",
			Slug:              "fastdrill-professional-18v-cordless-drill",
			Description:       "High-performance cordless drill with advanced lithium-ion battery technology. Perfect for professional construction and home improvement projects.",
			Brand:             "FastDrill",
			Category:          "Power Tools",
			Images: []string{
				"https://images.unsplash.com/photo-1504148455328-c376907d081c?w=500",
				"https://images.unsplash.com/photo-1581244277943-fe4a9c777189?w=500",
			},
			Variants: []catalog.ProductVariant{
				{ID: "var_001_1", Size: "18V Basic", Packaging: "Tool Only", EstimatedPriceNPR: npr(15000), StockStatus: catalog.StockInStock},
				{ID: "var_001_2", Size: "18V Pro", Packaging: "Kit with 2 Batteries", EstimatedPriceNPR: npr(25000), StockStatus: catalog.StockInStock},
				{ID: "var_001_3", Size: "18V Max", Packaging: "Complete Set with Case", EstimatedPriceNPR: npr(35000), StockStatus: catalog.StockLowStock},
			},
			Featured: true,
		},
		{
			BaseAggregateRoot: root("prod_002", "2024-01-10T09:20:00Z", "2024-01-18T11:45:00Z"),
			Name:              "Spider Heavy Duty Angle Grinder",
			Slug:              "spider-heavy-duty-angle-grinder",
			Description:       "Industrial-grade angle grinder designed for heavy-duty cutting and grinding applications. Built to withstand continuous professional use.",
			Brand:             "Spider",
			Category:          "Power Tools",
			Images:            []string{"https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=500"},
			Variants: []catalog.ProductVariant{
				{ID: "var_002_1", Size: "4 inch (100mm)", Packaging: "Standard Box", EstimatedPriceNPR: npr(8500), StockStatus: catalog.StockInStock},
				{ID: "var_002_2", Size: "5 inch (125mm)", Packaging: "Standard Box", EstimatedPriceNPR: npr(12000), StockStatus: catalog.StockInStock},
			},
		},
		{
			BaseAggregateRoot: root("prod_003", "2024-01-12T15:45:00Z", "2024-01-22T10:30:00Z"),
			Name:              "Gorkha Premium Tool Kit",
			Slug:              "gorkha-premium-tool-kit",
			Description:       "Comprehensive tool kit containing essential hand tools for professional tradespeople and serious DIY enthusiasts. Made with traditional craftsmanship.",
			Brand:             "Gorkha",
			Category:          "Hand Tools",
			Images: []string{
				"https://images.unsplash.com/photo-1606086041992-8b7c3c6b2e07?w=500",
				"https://images.unsplash.com/photo-1609205250516-4c225cd4ef26?w=500",
			},
			Variants: []catalog.ProductVariant{
				{ID: "var_003_1", Size: "50-piece Set", Packaging: "Metal Toolbox", EstimatedPriceNPR: npr(18000), StockStatus: catalog.StockInStock},
				{ID: "var_003_2", Size: "100-piece Set", Packaging: "Rolling Toolbox", EstimatedPriceNPR: npr(32000), StockStatus: catalog.StockPreOrder},
			},
			Featured: true,
		},
	}
}

// Brands returns the sample brands
func Brands() []catalog.Brand {
	return []catalog.Brand{
		{
			BaseEntity:      base("brand_001", epoch, epoch),
			Name:            "FastDrill",
			Slug:            "fastdrill",
			Description:     "Leading manufacturer of professional power tools and drilling equipment",
			Logo:            "https://images.unsplash.com/photo-1560472354-b33ff0c44a43?w=200",
			OriginCountry:   "China",
			EstablishedYear: 1995,
			Specialty:       "Power Tools & Drilling Equipment",
			Active:          true,
			SortOrder:       1,
		},
		{
			BaseEntity:      base("brand_002", epoch, epoch),
			Name:            "Spider",
			Slug:            "spider",
			Description:     "Heavy-duty industrial tools for professional construction and manufacturing",
			Logo:            "https://images.unsplash.com/photo-1551836022-deb4988cc6c0?w=200",
			OriginCountry:   "China",
			EstablishedYear: 1988,
			Specialty:       "Industrial Power Tools",
			Active:          true,
			SortOrder:       2,
		},
		{
			BaseEntity:      base("brand_003", epoch, epoch),
			Name:            "Gorkha",
			Slug:            "gorkha",
			Description:     "Traditional craftsmanship meets modern engineering in premium tool manufacturing",
			Logo:            "https://images.unsplash.com/photo-1589561084283-930aa7b62678?w=200",
			OriginCountry:   "India",
			EstablishedYear: 1975,
			Specialty:       "Hand Tools & Traditional Equipment",
			Active:          true,
			SortOrder:       3,
		},
	}
}

// Categories returns the sample categories
func Categories() []catalog.Category {
	return []catalog.Category{
		{
			BaseEntity:  base("cat_001", epoch, epoch),
			Name:        "Power Tools",
			Slug:        "power-tools",
			Description: "Electric and battery-powered tools for professional and DIY use",
			Icon:        "Zap",
			Color:       "#3B82F6",
			Active:      true,
			SortOrder:   1,
		},
		{
			BaseEntity:  base("cat_002", epoch, epoch),
			Name:        "Hand Tools",
			Slug:        "hand-tools",
			Description: "Manual tools for precision work and traditional craftsmanship",
			Icon:        "Wrench",
			Color:       "#EF4444",
			Active:      true,
			SortOrder:   2,
		},
		{
			BaseEntity:  base("cat_003", epoch, epoch),
			Name:        "Safety Equipment",
			Slug:        "safety-equipment",
			Description: "Personal protective equipment and workplace safety gear",
			Icon:        "Shield",
			Color:       "#10B981",
			Active:      true,
			SortOrder:   3,
		},
	}
}

// SiteSettings returns the default settings row
func SiteSettings() settings.SiteSettings {
	return settings.SiteSettings{
		BaseEntity:     base("settings_001", epoch, epoch),
		CompanyName:    "Jeen Mata Impex",
		Tagline:        "Premium Import Solutions",
		ContactEmail:   "jeenmataimpex8@gmail.com",
		ContactPhone:   "+977-1-XXXXXXX",
		ContactAddress: "Kathmandu, Nepal",
		FeatureFlags: map[string]bool{
			settings.FlagWhatsAppNotifications:  true,
			settings.FlagDealerSelfRegistration: true,
			settings.FlagBulkProductUpload:      true,
			settings.FlagAdvancedAnalytics:      false,
		},
	}
}

// Settings returns the settings table
func Settings() []settings.SiteSettings {
	return []settings.SiteSettings{SiteSettings()}
}

// Users returns one admin and one approved dealer
func Users() []identity.User {
	return []identity.User{
		{
			BaseEntity: base("user_001", epoch, epoch),
			Email:      "admin@jeenmataimpex.com",
			FullName:   "Admin User",
			Role:       identity.RoleAdmin,
		},
		{
			BaseEntity:   base("user_002", "2024-01-10T10:30:00Z", "2024-01-10T10:30:00Z"),
			Email:        "abc.hardware@gmail.com",
			FullName:     "Ram Sharma",
			Role:         identity.RoleUser,
			BusinessName: "ABC Hardware Store",
			VatPan:       "123456789",
			Address:      "Thamel, Kathmandu, Nepal",
			Phone:        "+977-1-4567890",
			WhatsApp:     "+977-9851234567",
			BusinessType: "Hardware Retail",
			DealerStatus: identity.DealerApproved,
		},
	}
}

// Orders returns a confirmed order placed by the sample dealer
func Orders() []trade.Order {
	return []trade.Order{
		{
			BaseAggregateRoot: root("order_001", "2024-01-20T09:15:00Z", "2024-01-21T14:30:00Z"),
			DealerEmail:       "abc.hardware@gmail.com",
			OrderNumber:       "JMI-1705123456789",
			ProductItems: []trade.OrderItem{
				{
					ProductID:      "prod_001",
					ProductName:    "FastDrill Professional 18V Cordless Drill",
					ProductImage:   "https://images.unsplash.com/photo-1504148455328-c376907d081c?w=500",
					VariantID:      "var_001_2",
					VariantDetails: "18V Pro - Kit with 2 Batteries",
					Quantity:       3,
					UnitPriceNPR:   npr(25000),
					Notes:          "Please include extra charger if available",
				},
				{
					ProductID:      "prod_002",
					ProductName:    "Spider Heavy Duty Angle Grinder",
					ProductImage:   "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=500",
					VariantID:      "var_002_1",
					VariantDetails: "4 inch (100mm) - Standard Box",
					Quantity:       5,
					UnitPriceNPR:   npr(8500),
					Notes:          "Need these for upcoming project",
				},
			},
			TotalAmountNPR:  npr(117500),
			Status:          trade.OrderStatusConfirmed,
			DeliveryAddress: "Hardware Store, Thamel, Kathmandu",
			Notes:           "Regular customer - priority delivery requested",
		},
	}
}

// Shipments returns two inbound shipments
func Shipments() []logistics.Shipment {
	return []logistics.Shipment{
		{
			BaseEntity:     base("ship_001", "2024-01-20T10:00:00Z", "2024-01-25T08:30:00Z"),
			TrackingNumber: "JMISHIP2024001",
			OriginCountry:  logistics.OriginChina,
			Status:         logistics.ShipmentInTransit,
			ETADate:        day("2024-02-15"),
			ProductNames: []string{
				"FastDrill Professional 18V Cordless Drill",
				"Spider Heavy Duty Angle Grinder",
				"Various Power Tool Accessories",
			},
			PortName:    "Kolkata Port",
			LastUpdated: at("2024-01-25T08:30:00Z"),
		},
		{
			BaseEntity:     base("ship_002", "2024-01-15T12:30:00Z", "2024-01-28T14:15:00Z"),
			TrackingNumber: "JMISHIP2024002",
			OriginCountry:  logistics.OriginIndia,
			Status:         logistics.ShipmentCustoms,
			ETADate:        day("2024-02-05"),
			ProductNames: []string{
				"Gorkha Premium Tool Kit",
				"Traditional Hand Tools",
				"Metal Working Tools",
			},
			PortName:    "Birgunj Border",
			LastUpdated: at("2024-01-28T14:15:00Z"),
		},
	}
}

// Applications returns one approved and one pending dealer application
func Applications() []identity.DealerApplication {
	return []identity.DealerApplication{
		{
			BaseAggregateRoot:  root("app_001", "2024-01-10T10:30:00Z", "2024-01-10T10:30:00Z"),
			BusinessName:       "ABC Hardware Store",
			ContactPerson:      "Ram Sharma",
			Email:              "abc.hardware@gmail.com",
			Phone:              "+977-1-4567890",
			Address:            "Thamel, Kathmandu, Nepal",
			BusinessType:       "Hardware Retail",
			VatPan:             "123456789",
			WhatsApp:           "+977-9851234567",
			ApplicationMessage: "We are an established hardware store with 10 years of experience. Looking to expand our power tools inventory.",
			Status:             identity.ApplicationApproved,
		},
		{
			BaseAggregateRoot:  root("app_002", "2024-01-25T14:15:00Z", "2024-01-25T14:15:00Z"),
			BusinessName:       "Professional Tools Merchant",
			ContactPerson:      "Sita Patel",
			Email:              "tools.merchant@outlook.com",
			Phone:              "+977-1-9876543",
			Address:            "New Road, Pokhara, Nepal",
			BusinessType:       "Wholesale Distribution",
			VatPan:             "987654321",
			WhatsApp:           "+977-9849876543",
			ApplicationMessage: "We distribute tools to contractors and builders in Pokhara region. Need access to quality imported tools.",
			Status:             identity.ApplicationPending,
		},
	}
}

// PageVisits starts empty; visits are only ever recorded at runtime
func PageVisits() []analytics.PageVisit {
	return nil
}
