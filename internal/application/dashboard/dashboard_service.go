// Package dashboard assembles the admin overview.
package dashboard

import (
	"context"

	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/jeenmata/impex/internal/domain/identity"
	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/jeenmata/impex/internal/domain/trade"
	"golang.org/x/sync/errgroup"
)

// RecentLimit is how many recent orders and applications the overview shows
const RecentLimit = 5

// Stats is the admin dashboard payload
type Stats struct {
	TotalProducts       int                          `json:"total_products"`
	TotalOrders         int                          `json:"total_orders"`
	PendingApplications int                          `json:"pending_applications"`
	ApprovedDealers     int                          `json:"approved_dealers"`
	RecentOrders        []trade.Order                `json:"recent_orders"`
	RecentApplications  []identity.DealerApplication `json:"recent_applications"`
}

// Service loads the dashboard figures
type Service struct {
	productRepo catalog.ProductRepository
	orderRepo   trade.OrderRepository
	appRepo     identity.DealerApplicationRepository
	userRepo    identity.UserRepository
}

// NewService creates a new dashboard Service
func NewService(
	productRepo catalog.ProductRepository,
	orderRepo trade.OrderRepository,
	appRepo identity.DealerApplicationRepository,
	userRepo identity.UserRepository,
) *Service {
	return &Service{productRepo: productRepo, orderRepo: orderRepo, appRepo: appRepo, userRepo: userRepo}
}

// Stats loads products, orders, applications and dealers concurrently
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var (
		products []catalog.Product
		orders   []trade.Order
		pending  []identity.DealerApplication
		dealers  []identity.User
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.productRepo.List(ctx, shared.NewQuery("", 0))
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.orderRepo.List(ctx, shared.NewQuery("-created_date", 0))
		return err
	})
	g.Go(func() (err error) {
		pending, err = s.appRepo.List(ctx, shared.NewQuery("-created_date", 0).
			Where("status", string(identity.ApplicationPending)))
		return err
	})
	g.Go(func() (err error) {
		dealers, err = s.userRepo.List(ctx, shared.NewQuery("", 0).
			Where("dealer_status", string(identity.DealerApproved)))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Stats{
		TotalProducts:       len(products),
		TotalOrders:         len(orders),
		PendingApplications: len(pending),
		ApprovedDealers:     len(dealers),
		RecentOrders:        head(orders, RecentLimit),
		RecentApplications:  head(pending, RecentLimit),
	}, nil
}

func head[T any](rows []T, n int) []T {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}
