package e2e

import (
	"testing"

	"cloud.google.com/go/spanner"

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
	"github.com/anastacio2001/kzstore-sub000/tests/testutil"
)

// Services holds all use cases and queries for E2E tests.
type Services struct {
	// Commands
	QuoteCart   *quote_cart.Interactor
	PlaceOrder  *place_order.Interactor
	UpdateOrder *update_order_status.Interactor

	// Queries
	GetOrder   *get_order.Query
	ListOrders *list_orders.Query

	// Infrastructure
	Clock      clock.Clock
	Client     *spanner.Client
	OutboxRepo contracts.OutboxRepository
	Committer  *committer.Committer
}

// setupTest initializes all dependencies for E2E testing.
func setupTest(t *testing.T) (*Services, func()) {
	t.Helper()
	return setupTestWithClock(t, clock.NewRealClock())
}

// setupTestWithClock is setupTest with an injectable clock, for scenarios
// that pin checkout time against flash-sale windows.
func setupTestWithClock(t *testing.T, clk clock.Clock) (*Services, func()) {
	t.Helper()

	// Setup Spanner client with clean database
	client, cleanup := testutil.SetupSpannerTest(t)

	// Create infrastructure components
	comm := committer.NewCommitter(client)
	calculator := domain.NewPricingCalculator(domain.DefaultCheckoutConfig())

	// Create repositories
	catalog := repo.NewCatalogRepo()
	couponRepo := repo.NewCouponRepo()
	orderRepo := repo.NewOrderRepo()
	affiliateRepo := repo.NewAffiliateRepo()
	commissionRepo := repo.NewCommissionRepo()
	outboxRepo := repo.NewOutboxRepo(client)
	readModel := repo.NewReadModel(client)

	// Create command use cases
	quoteCartUseCase := quote_cart.NewInteractor(client, catalog, couponRepo, calculator, clk)
	placeOrderUseCase := place_order.NewInteractor(client, catalog, couponRepo, orderRepo, affiliateRepo, outboxRepo, comm, calculator, clk)
	updateOrderUseCase := update_order_status.NewInteractor(catalog, couponRepo, orderRepo, affiliateRepo, commissionRepo, outboxRepo, comm, clk)

	// Create query use cases
	getOrderQuery := get_order.NewQuery(readModel)
	listOrdersQuery := list_orders.NewQuery(readModel)

	services := &Services{
		QuoteCart:   quoteCartUseCase,
		PlaceOrder:  placeOrderUseCase,
		UpdateOrder: updateOrderUseCase,
		GetOrder:    getOrderQuery,
		ListOrders:  listOrdersQuery,
		Clock:       clk,
		Client:      client,
		OutboxRepo:  outboxRepo,
		Committer:   comm,
	}

	return services, cleanup
}
