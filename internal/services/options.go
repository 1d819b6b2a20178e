package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/contracts"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/queries/get_order"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/queries/list_orders"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/repo"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/usecases/place_order"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/usecases/quote_cart"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/usecases/update_order_status"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/clock"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/committer"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/config"
	checkouthttp "github.com/anastacio2001/kzstore-sub000/internal/transport/http/checkout"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient   *spanner.Client
	Committer       *committer.Committer
	Clock           clock.Clock
	OutboxRepo      contracts.OutboxRepository
	CheckoutHandler *checkouthttp.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)
	calculator := domain.NewPricingCalculator(domain.CheckoutConfig{
		DynamicShippingCost:   domain.NewMoney(cfg.DynamicShippingCost),
		PreOrderDepositPct:    cfg.PreOrderDepositPct,
		DefaultCommissionRate: cfg.DefaultCommissionRate,
	})

	// 3. Create repositories
	catalog := repo.NewCatalogRepo()
	couponRepo := repo.NewCouponRepo()
	orderRepo := repo.NewOrderRepo()
	affiliateRepo := repo.NewAffiliateRepo()
	commissionRepo := repo.NewCommissionRepo()
	outboxRepo := repo.NewOutboxRepo(spannerClient)
	readModel := repo.NewReadModel(spannerClient)

	// 4. Create command use cases (write operations)
	quoteCart := quote_cart.NewInteractor(spannerClient, catalog, couponRepo, calculator, clk)
	placeOrder := place_order.NewInteractor(
		spannerClient, catalog, couponRepo, orderRepo, affiliateRepo, outboxRepo, comm, calculator, clk)
	updateStatus := update_order_status.NewInteractor(
		catalog, couponRepo, orderRepo, affiliateRepo, commissionRepo, outboxRepo, comm, clk)

	// 5. Create query use cases (read operations)
	getOrder := get_order.NewQuery(readModel)
	listOrders := list_orders.NewQuery(readModel)

	// 6. Create HTTP handler
	checkoutHandler := checkouthttp.NewHandler(quoteCart, placeOrder, updateStatus, getOrder, listOrders, logger)

	return &ServiceOptions{
		SpannerClient:   spannerClient,
		Committer:       comm,
		Clock:           clk,
		OutboxRepo:      outboxRepo,
		CheckoutHandler: checkoutHandler,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
