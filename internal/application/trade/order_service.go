package trade

import (
	"context"
	"time"

	"github.com/jeenmata/impex/internal/domain/cart"
	"github.com/jeenmata/impex/internal/domain/identity"
	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/jeenmata/impex/internal/domain/trade"
	"github.com/jeenmata/impex/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// OrderService handles checkout and the order lifecycle
type OrderService struct {
	orderRepo trade.OrderRepository
	userRepo  identity.UserRepository
	carts     cart.Store
	events    shared.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService. events may be nil.
func NewOrderService(
	orderRepo trade.OrderRepository,
	userRepo identity.UserRepository,
	carts cart.Store,
	events shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		carts:     carts,
		events:    events,
		logger:    logger,
		now:       time.Now,
	}
}

// Checkout submits the user's cart as an order and empties the cart
func (s *OrderService) Checkout(ctx context.Context, userID string, req CheckoutRequest) (_ *trade.Order, err error) {
	ctx, span := telemetry.StartSpan(ctx, "order.checkout", attribute.String("user_id", userID))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	c, err := s.carts.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Your cart is empty")
	}

	address := req.DeliveryAddress
	if address == "" {
		address = user.Address
	}
	order, err := trade.NewOrder(user.Email, c.ToOrderItems(), address, req.Notes, s.now())
	if err != nil {
		return nil, err
	}

	events := order.GetDomainEvents()
	order.ClearDomainEvents()
	saved, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := s.carts.Delete(ctx, userID); err != nil {
		s.logger.Warn("Failed to clear cart after checkout", zap.String("user_id", userID), zap.Error(err))
	}
	s.publish(ctx, events)
	s.logger.Info("Order submitted",
		zap.String("order_number", saved.OrderNumber),
		zap.String("dealer_email", saved.DealerEmail),
		zap.String("total_npr", saved.TotalAmountNPR.StringFixed(2)))
	return saved, nil
}

// ListForDealer returns a dealer's orders, newest first
func (s *OrderService) ListForDealer(ctx context.Context, email string) ([]trade.Order, error) {
	return s.orderRepo.List(ctx, shared.NewQuery("-created_date", 0).Where("dealer_email", identity.NormalizeEmail(email)))
}

// ListAll returns every order, newest first
func (s *OrderService) ListAll(ctx context.Context, filter OrderListFilter) ([]trade.Order, error) {
	q := shared.NewQuery("-created_date", filter.Limit)
	if filter.Status != "" {
		q = q.Where("status", filter.Status)
	}
	return s.orderRepo.List(ctx, q)
}

// Get returns an order by ID
func (s *OrderService) Get(ctx context.Context, id string) (*trade.Order, error) {
	return s.orderRepo.Get(ctx, id)
}

// GetForDealer returns an order only if it belongs to the dealer
func (s *OrderService) GetForDealer(ctx context.Context, id, email string) (*trade.Order, error) {
	order, err := s.orderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.DealerEmail != identity.NormalizeEmail(email) {
		return nil, shared.NewNotFoundError("Order")
	}
	return order, nil
}

// UpdateStatus moves an order along its lifecycle
func (s *OrderService) UpdateStatus(ctx context.Context, id string, req UpdateOrderStatusRequest) (*trade.Order, error) {
	order, err := s.orderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.UpdateStatus(trade.OrderStatus(req.Status)); err != nil {
		return nil, err
	}
	return s.save(ctx, order)
}

// Cancel cancels a dealer's own submitted order
func (s *OrderService) Cancel(ctx context.Context, id, email string) (*trade.Order, error) {
	order, err := s.GetForDealer(ctx, id, email)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(); err != nil {
		return nil, err
	}
	return s.save(ctx, order)
}

func (s *OrderService) save(ctx context.Context, order *trade.Order) (*trade.Order, error) {
	events := order.GetDomainEvents()
	order.ClearDomainEvents()
	saved, err := s.orderRepo.Update(ctx, order)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events)
	return saved, nil
}

func (s *OrderService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish order events", zap.Error(err))
	}
}
