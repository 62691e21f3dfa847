// Package trade runs the dealer cart, checkout and order management.
package trade

import (
	"context"
	"time"

	"github.com/jeenmata/impex/internal/domain/cart"
	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/jeenmata/impex/internal/domain/shared"
)

// CartService manages the dealer's server-side cart
type CartService struct {
	carts       cart.Store
	productRepo catalog.ProductRepository
	now         func() time.Time
}

// NewCartService creates a new CartService
func NewCartService(carts cart.Store, productRepo catalog.ProductRepository) *CartService {
	return &CartService{carts: carts, productRepo: productRepo, now: time.Now}
}

// Get returns the user's cart
func (s *CartService) Get(ctx context.Context, userID string) (*CartResponse, error) {
	c, err := s.carts.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// Add puts a product variant in the cart. Out of stock variants are refused.
func (s *CartService) Add(ctx context.Context, userID string, req AddCartItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	variant, ok := product.Variant(req.VariantID)
	if !ok {
		return nil, shared.NewNotFoundError("Product variant")
	}
	if variant.StockStatus == catalog.StockOutOfStock {
		return nil, shared.NewDomainError("OUT_OF_STOCK", product.Name+" ("+variant.Label()+") is out of stock")
	}

	return s.modify(ctx, userID, func(c *cart.Cart, now time.Time) error {
		_, err := c.Add(product, *variant, req.Quantity, req.Note, now)
		return err
	})
}

// UpdateItem changes a line's quantity and/or note. A quantity of 0 removes it.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID string, req UpdateCartItemRequest) (*CartResponse, error) {
	return s.modify(ctx, userID, func(c *cart.Cart, now time.Time) error {
		if req.Note != nil {
			if err := c.UpdateNote(itemID, *req.Note, now); err != nil {
				return err
			}
		}
		if req.Quantity != nil {
			return c.UpdateQuantity(itemID, *req.Quantity, now)
		}
		return nil
	})
}

// Remove deletes a line from the cart
func (s *CartService) Remove(ctx context.Context, userID, itemID string) (*CartResponse, error) {
	return s.modify(ctx, userID, func(c *cart.Cart, now time.Time) error {
		return c.Remove(itemID, now)
	})
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.carts.Delete(ctx, userID)
}

func (s *CartService) modify(ctx context.Context, userID string, fn func(*cart.Cart, time.Time) error) (*CartResponse, error) {
	c, err := s.carts.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(c, s.now()); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}
