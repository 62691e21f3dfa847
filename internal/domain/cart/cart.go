// Package cart models a dealer's shopping cart. Items keep a snapshot of the
// product and variant they were added from so that totals stay stable while
// the dealer is shopping.
package cart

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/jeenmata/impex/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// ProductSnapshot is the part of a product a cart line needs
type ProductSnapshot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Brand string `json:"brand"`
	Image string `json:"image,omitempty"`
}

// Item is a single cart line
type Item struct {
	ID       string                 `json:"id"`
	Product  ProductSnapshot        `json:"product"`
	Variant  catalog.ProductVariant `json:"variant"`
	Quantity int                    `json:"quantity"`
	Note     string                 `json:"note"`
}

// Subtotal returns price × quantity for the line
func (i Item) Subtotal() decimal.Decimal {
	return i.Variant.EstimatedPriceNPR.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds the items a dealer intends to order
type Cart struct {
	UserID    string    `json:"user_id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns an empty cart for a user
func New(userID string) *Cart {
	return &Cart{UserID: userID, Items: []Item{}}
}

// Add puts a variant in the cart. Adding the same product and variant again
// increases the quantity, and a non-empty note replaces the previous one.
func (c *Cart) Add(product *catalog.Product, variant catalog.ProductVariant, quantity int, note string, now time.Time) (*Item, error) {
	if quantity < 1 {
		return nil, shared.NewValidationError("Quantity must be at least 1")
	}
	note = strings.TrimSpace(note)
	for i := range c.Items {
		item := &c.Items[i]
		if item.Product.ID == product.ID && item.Variant.ID == variant.ID {
			item.Quantity += quantity
			if note != "" {
				item.Note = note
			}
			c.UpdatedAt = now
			return item, nil
		}
	}

	c.Items = append(c.Items, Item{
		ID: product.ID + "_" + variant.ID + "_" + strconv.FormatInt(now.UnixMilli(), 10),
		Product: ProductSnapshot{
			ID:    product.ID,
			Name:  product.Name,
			Slug:  product.Slug,
			Brand: product.Brand,
			Image: product.PrimaryImage(),
		},
		Variant:  variant,
		Quantity: quantity,
		Note:     note,
	})
	c.UpdatedAt = now
	return &c.Items[len(c.Items)-1], nil
}

// UpdateQuantity sets the quantity of a line. A quantity below 1 removes it.
func (c *Cart) UpdateQuantity(itemID string, quantity int, now time.Time) error {
	if quantity < 1 {
		return c.Remove(itemID, now)
	}
	item, ok := c.find(itemID)
	if !ok {
		return shared.NewNotFoundError("Cart item")
	}
	item.Quantity = quantity
	c.UpdatedAt = now
	return nil
}

// UpdateNote replaces the note of a line
func (c *Cart) UpdateNote(itemID, note string, now time.Time) error {
	item, ok := c.find(itemID)
	if !ok {
		return shared.NewNotFoundError("Cart item")
	}
	item.Note = strings.TrimSpace(note)
	c.UpdatedAt = now
	return nil
}

// Remove deletes a line from the cart
func (c *Cart) Remove(itemID string, now time.Time) error {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = now
			return nil
		}
	}
	return shared.NewNotFoundError("Cart item")
}

// Clear empties the cart
func (c *Cart) Clear(now time.Time) {
	c.Items = []Item{}
	c.UpdatedAt = now
}

// Total returns the sum of all line subtotals
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Count returns the number of units in the cart
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ToOrderItems converts the cart lines into order lines
func (c *Cart) ToOrderItems() []trade.OrderItem {
	out := make([]trade.OrderItem, 0, len(c.Items))
	for _, item := range c.Items {
		out = append(out, trade.OrderItem{
			ProductID:      item.Product.ID,
			ProductName:    item.Product.Name,
			ProductImage:   item.Product.Image,
			VariantID:      item.Variant.ID,
			VariantDetails: item.Variant.Label(),
			Quantity:       item.Quantity,
			UnitPriceNPR:   item.Variant.EstimatedPriceNPR,
			Notes:          item.Note,
		})
	}
	return out
}

func (c *Cart) find(itemID string) (*Item, bool) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i], true
		}
	}
	return nil, false
}

// Store persists carts by user ID
type Store interface {
	// Load returns the user's cart, or an empty cart if none is stored
	Load(ctx context.Context, userID string) (*Cart, error)
	// Save stores the cart
	Save(ctx context.Context, cart *Cart) error
	// Delete removes the user's cart
	Delete(ctx context.Context, userID string) error
}
