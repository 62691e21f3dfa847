package trade

import (
	"context"
	"testing"
	"time"

	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/jeenmata/impex/internal/domain/identity"
	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/jeenmata/impex/internal/domain/trade"
	"github.com/jeenmata/impex/internal/infrastructure/cache"
	"github.com/jeenmata/impex/internal/infrastructure/hybrid"
	"github.com/jeenmata/impex/internal/infrastructure/mockdata"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const dealerID = "user_002"

// MockEventPublisher is a testify mock of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type fixture struct {
	carts  *CartService
	orders *OrderService
	events *MockEventPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	products := mockdata.Products()
	products[1].Variants[1].StockStatus = catalog.StockOutOfStock

	store := cache.NewMemoryCartStore()
	productRepo := hybrid.New[catalog.Product](catalog.TableProducts, nil, products, hybrid.Options{})
	orderRepo := hybrid.New[trade.Order](trade.TableOrders, nil, mockdata.Orders(), hybrid.Options{})
	userRepo := hybrid.New[identity.User](identity.TableUsers, nil, mockdata.Users(), hybrid.Options{})
	events := new(MockEventPublisher)

	clock := func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	carts := NewCartService(store, productRepo)
	carts.now = clock
	orders := NewOrderService(orderRepo, userRepo, store, events, nil)
	orders.now = clock
	return &fixture{carts: carts, orders: orders, events: events}
}

func TestCartService(t *testing.T) {
	ctx := context.Background()

	t.Run("starts empty", func(t *testing.T) {
		f := newFixture(t)
		c, err := f.carts.Get(ctx, dealerID)
		require.NoError(t, err)
		assert.Empty(t, c.Items)
		assert.True(t, c.Total.IsZero())
	})

	t.Run("adding the same variant twice merges the line", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.carts.Add(ctx, dealerID, AddCartItemRequest{ProductID: "prod_001", VariantID: "var_001_1", Quantity: 2})
		require.NoError(t, err)
		c, err := f.carts.Add(ctx, dealerID, AddCartItemRequest{ProductID: "prod_001", VariantID: "var_001_1", Quantity: 1, Note: "urgent"})
		require.NoError(t, err)

		require.Len(t, c.Items, 1)
		assert.Equal(t, 3, c.ItemCount)
		assert.Equal(t, "urgent", c.Items[0].Note)
		assert.True(t, decimal.NewFromInt(45000).Equal(c.Total))
	})

	t.Run("refuses out of stock variants", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.carts.Add(ctx, dealerID, AddCartItemRequest{ProductID: "prod_002", VariantID: "var_002_2", Quantity: 1})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.NewDomainError("OUT_OF_STOCK", ""))
	})

	t.Run("unknown product or variant", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.carts.Add(ctx, dealerID, AddCartItemRequest{ProductID: "prod_999", VariantID: "x", Quantity: 1})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = f.carts.Add(ctx, dealerID, AddCartItemRequest{ProductID: "prod_001", VariantID: "x", Quantity: 1})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("update, remove and clear", func(t *testing.T) {
		f := newFixture(t)
		c, err := f.carts.Add(ctx, dealerID, AddCartItemRequest{ProductID: "prod_003", VariantID: "var_003_1", Quantity: 1})
		require.NoError(t, err)
		itemID := c.Items[0].ID

		qty, note := 4, "blue boxes"
		c, err = f.carts.UpdateItem(ctx, dealerID, itemID, UpdateCartItemRequest{Quantity: &qty, Note: &note})
		require.NoError(t, err)
		assert.Equal(t, 4, c.Items[0].Quantity)
		assert.Equal(t, "blue boxes", c.Items[0].Note)

		zero := 0
		c, err = f.carts.UpdateItem(ctx, dealerID, itemID, UpdateCartItemRequest{Quantity: &zero})
		require.NoError(t, err)
		assert.Empty(t, c.Items)

		_, err = f.carts.Remove(ctx, dealerID, itemID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = f.carts.Add(ctx, dealerID, AddCartItemRequest{ProductID: "prod_003", VariantID: "var_003_1", Quantity: 1})
		require.NoError(t, err)
		require.NoError(t, f.carts.Clear(ctx, dealerID))
		c, err = f.carts.Get(ctx, dealerID)
		require.NoError(t, err)
		assert.Empty(t, c.Items)
	})
}

func TestOrderService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("turns the cart into a submitted order", func(t *testing.T) {
		f := newFixture(t)
		f.events.On("Publish", mock.Anything, mock.MatchedBy(func(evts []shared.DomainEvent) bool {
			return len(evts) == 1 && evts[0].EventType() == trade.EventTypeOrderSubmitted
		})).Return(nil).Once()

		_, err := f.carts.Add(ctx, dealerID, AddCartItemRequest{ProductID: "prod_001", VariantID: "var_001_2", Quantity: 2, Note: "with case"})
		require.NoError(t, err)
		_, err = f.carts.Add(ctx, dealerID, AddCartItemRequest{ProductID: "prod_003", VariantID: "var_003_1", Quantity: 1})
		require.NoError(t, err)

		order, err := f.orders.Checkout(ctx, dealerID, CheckoutRequest{Notes: "deliver before noon"})
		require.NoError(t, err)
		assert.Equal(t, "JMI-1709294400000", order.OrderNumber)
		assert.Equal(t, trade.OrderStatusSubmitted, order.Status)
		assert.Equal(t, "abc.hardware@gmail.com", order.DealerEmail)
		assert.Equal(t, "Thamel, Kathmandu, Nepal", order.DeliveryAddress, "defaults to the profile address")
		assert.True(t, decimal.NewFromInt(68000).Equal(order.TotalAmountNPR))
		require.Len(t, order.ProductItems, 2)
		assert.Equal(t, "18V Pro - Kit with 2 Batteries", order.ProductItems[0].VariantDetails)

		c, err := f.carts.Get(ctx, dealerID)
		require.NoError(t, err)
		assert.Empty(t, c.Items)

		mine, err := f.orders.ListForDealer(ctx, "ABC.Hardware@gmail.com")
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, order.ID, mine[0].ID)
		f.events.AssertExpectations(t)
	})

	t.Run("refuses an empty cart", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.orders.Checkout(ctx, dealerID, CheckoutRequest{})
		assert.ErrorIs(t, err, shared.NewDomainError("EMPTY_CART", ""))
	})

	t.Run("explicit address wins", func(t *testing.T) {
		f := newFixture(t)
		f.events.On("Publish", mock.Anything, mock.Anything).Return(nil)
		_, err := f.carts.Add(ctx, dealerID, AddCartItemRequest{ProductID: "prod_001", VariantID: "var_001_1", Quantity: 1})
		require.NoError(t, err)

		order, err := f.orders.Checkout(ctx, dealerID, CheckoutRequest{DeliveryAddress: "Pokhara warehouse"})
		require.NoError(t, err)
		assert.Equal(t, "Pokhara warehouse", order.DeliveryAddress)
	})
}

func TestOrderService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("admin moves an order forward", func(t *testing.T) {
		f := newFixture(t)
		f.events.On("Publish", mock.Anything, mock.Anything).Return(nil)

		order, err := f.orders.UpdateStatus(ctx, "order_001", UpdateOrderStatusRequest{Status: "Processing"})
		require.NoError(t, err)
		assert.Equal(t, trade.OrderStatusProcessing, order.Status)

		_, err = f.orders.UpdateStatus(ctx, "order_001", UpdateOrderStatusRequest{Status: "Delivered"})
		assert.ErrorIs(t, err, shared.ErrInvalidState)

		processing, err := f.orders.ListAll(ctx, OrderListFilter{Status: "Processing"})
		require.NoError(t, err)
		assert.Len(t, processing, 1)
	})

	t.Run("dealer cancels only own submitted orders", func(t *testing.T) {
		f := newFixture(t)
		f.events.On("Publish", mock.Anything, mock.Anything).Return(nil)

		_, err := f.orders.Cancel(ctx, "order_001", "abc.hardware@gmail.com")
		assert.ErrorIs(t, err, shared.ErrInvalidState, "confirmed orders cannot be cancelled by the dealer")

		_, err = f.orders.Cancel(ctx, "order_001", "someone@else.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = f.carts.Add(ctx, dealerID, AddCartItemRequest{ProductID: "prod_001", VariantID: "var_001_1", Quantity: 1})
		require.NoError(t, err)
		order, err := f.orders.Checkout(ctx, dealerID, CheckoutRequest{})
		require.NoError(t, err)

		cancelled, err := f.orders.Cancel(ctx, order.ID, "abc.hardware@gmail.com")
		require.NoError(t, err)
		assert.Equal(t, trade.OrderStatusCancelled, cancelled.Status)
	})
}
