package place_order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/contracts"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/clock"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/committer"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/metrics"
)

// Request contains the data needed to place an order. RequestID is the
// client-supplied idempotency key; resubmitting the same key returns the
// original order instead of creating a second one.
type Request struct {
	RequestID     string
	UserID        string
	UserName      string
	UserEmail     string
	PaymentMethod string
	AffiliateCode string
	Items         []domain.CartItem
	CouponCode    string
}

// Result is the placement outcome. Idempotent marks a replayed request id.
type Result struct {
	Order      *domain.Order
	Idempotent bool
}

// Interactor handles order placement: the cart is priced and validated, then
// the order row, every stock decrement, the coupon usage and the outbox
// events commit in one read-write transaction. The locking reads inside that
// transaction are what serialize concurrent checkouts competing for the same
// stock.
type Interactor struct {
	client        *spanner.Client
	catalog       contracts.Catalog
	couponRepo    contracts.CouponRepository
	orderRepo     contracts.OrderRepository
	affiliateRepo contracts.AffiliateRepository
	outboxRepo    contracts.OutboxRepository
	committer     *committer.Committer
	calculator    *domain.PricingCalculator
	clock         clock.Clock
}

// NewInteractor creates a new place order interactor.
func NewInteractor(
	client *spanner.Client,
	catalog contracts.Catalog,
	couponRepo contracts.CouponRepository,
	orderRepo contracts.OrderRepository,
	affiliateRepo contracts.AffiliateRepository,
	outboxRepo contracts.OutboxRepository,
	committer *committer.Committer,
	calculator *domain.PricingCalculator,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		client:        client,
		catalog:       catalog,
		couponRepo:    couponRepo,
		orderRepo:     orderRepo,
		affiliateRepo: affiliateRepo,
		outboxRepo:    outboxRepo,
		committer:     committer,
		calculator:    calculator,
		clock:         clock,
	}
}

// Execute places an order. Validation runs twice: once against a read-only
// snapshot so ordinary failures (bad quantity, insufficient stock, rejected
// coupon) surface as themselves, and again under row locks at commit time,
// where any divergence from the preview means another checkout won the race
// and the caller gets ErrStockChanged.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	if err := i.validate(req); err != nil {
		return nil, err
	}

	cart := &domain.Cart{
		Items:      req.Items,
		CouponCode: domain.NormalizeCouponCode(req.CouponCode),
	}

	preview, affiliateCode, err := i.preview(ctx, cart, req.AffiliateCode)
	if err != nil {
		return nil, err
	}

	customer := domain.CustomerInfo{
		UserID:        req.UserID,
		UserName:      req.UserName,
		UserEmail:     req.UserEmail,
		PaymentMethod: req.PaymentMethod,
		AffiliateCode: affiliateCode,
	}

	var result *Result
	err = i.committer.InTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		result = nil // the client retries this fn on aborts

		existing, err := i.orderRepo.GetByRequestID(ctx, txn, req.RequestID)
		if err == nil {
			result = &Result{Order: existing, Idempotent: true}
			return nil
		}
		if !errors.Is(err, domain.ErrOrderNotFound) {
			return err
		}

		order, plan, err := i.reserve(ctx, txn, cart, preview, customer, req.RequestID)
		if err != nil {
			return err
		}

		if err := txn.BufferWrite(plan.Mutations()); err != nil {
			return fmt.Errorf("failed to buffer order writes: %w", err)
		}
		result = &Result{Order: order}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrStockChanged) {
			metrics.StockConflicts.Inc()
		}
		return nil, err
	}

	if !result.Idempotent {
		metrics.OrdersPlaced.Inc()
	}
	return result, nil
}

// preview prices the cart against a read-only snapshot and resolves the
// affiliate attribution. An unknown or inactive affiliate code is dropped
// rather than failing the checkout.
func (i *Interactor) preview(ctx context.Context, cart *domain.Cart, affiliateCode string) (*domain.Quote, string, error) {
	tx := i.client.ReadOnlyTransaction()
	defer tx.Close()

	quote, _, err := i.price(ctx, tx, cart)
	if err != nil {
		return nil, "", err
	}

	if affiliateCode != "" {
		affiliate, err := i.affiliateRepo.GetByCode(ctx, tx, affiliateCode)
		if errors.Is(err, domain.ErrAffiliateNotFound) {
			affiliateCode = ""
		} else if err != nil {
			return nil, "", err
		} else if !affiliate.Active {
			affiliateCode = ""
		}
	}

	return quote, affiliateCode, nil
}

// loaded is the catalog and coupon state a pricing pass read.
type loaded struct {
	products map[string]domain.PricedProduct
	coupon   *domain.Coupon
}

// price loads the cart's products, sales and coupon through tx and runs the
// calculator over them.
func (i *Interactor) price(ctx context.Context, tx contracts.Tx, cart *domain.Cart) (*domain.Quote, *loaded, error) {
	products := make(map[string]domain.PricedProduct, len(cart.Items))
	for _, item := range cart.Items {
		if _, already := products[item.ProductID]; already {
			continue
		}
		product, err := i.catalog.GetProduct(ctx, tx, item.ProductID)
		if err != nil {
			return nil, nil, fmt.Errorf("product %s: %w", item.ProductID, err)
		}
		var sale *domain.FlashSale
		if product.HasFlashSale() {
			sale, err = i.catalog.GetActiveFlashSale(ctx, tx, product.ID)
			if err != nil {
				return nil, nil, err
			}
		}
		products[item.ProductID] = domain.PricedProduct{Product: product, Sale: sale}
	}

	var coupon *domain.Coupon
	if cart.CouponCode != "" {
		var err error
		coupon, err = i.couponRepo.GetByCode(ctx, tx, cart.CouponCode)
		if err != nil {
			return nil, nil, err
		}
	}

	quote, err := i.calculator.Aggregate(cart, products, coupon, i.clock.Now())
	if err != nil {
		return nil, nil, err
	}

	return quote, &loaded{products: products, coupon: coupon}, nil
}

// reserve re-prices the cart under the transaction's row locks and builds
// the full commit plan. Any failure or divergence from the preview quote
// becomes ErrStockChanged: the snapshot the buyer approved no longer holds.
func (i *Interactor) reserve(
	ctx context.Context,
	txn *spanner.ReadWriteTransaction,
	cart *domain.Cart,
	preview *domain.Quote,
	customer domain.CustomerInfo,
	requestID string,
) (*domain.Order, *committer.CommitPlan, error) {
	quote, state, err := i.price(ctx, txn, cart)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrStockChanged, err)
		}
		return nil, nil, err
	}
	if !quotesMatch(preview, quote) {
		return nil, nil, domain.ErrStockChanged
	}

	now := i.clock.Now()
	order, err := domain.NewOrder(uuid.New().String(), newOrderNumber(now), requestID, quote, customer, now)
	if err != nil {
		return nil, nil, err
	}

	plan := committer.NewPlan()

	insertMut, err := i.orderRepo.InsertMut(order)
	if err != nil {
		return nil, nil, err
	}
	plan.Add(insertMut)

	perProduct := make(map[string]int64)
	for _, item := range cart.Items {
		perProduct[item.ProductID] += item.Quantity
	}
	for productID, quantity := range perProduct {
		product := state.products[productID].Product
		plan.Add(i.catalog.UpdateStockMut(productID, product.Stock-quantity))
	}

	salesByID := make(map[string]*domain.FlashSale)
	for _, priced := range state.products {
		if priced.Sale != nil {
			salesByID[priced.Sale.ID] = priced.Sale
		}
	}
	for saleID, quantity := range quote.FlashSaleQuantities() {
		sale := salesByID[saleID]
		plan.Add(i.catalog.UpdateStockSoldMut(saleID, sale.StockSold+quantity))
	}

	if quote.HasCoupon() {
		plan.Add(i.couponRepo.UpdateUsedCountMut(state.coupon.Code, state.coupon.UsedCount+1))
	}

	for _, event := range order.DomainEvents() {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to serialize event: %w", err)
		}
		plan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, string(payload))))
	}

	return order, plan, nil
}

// validate validates the request.
func (i *Interactor) validate(req *Request) error {
	if strings.TrimSpace(req.RequestID) == "" {
		return fmt.Errorf("%w: request id is required", domain.ErrInvalidRequest)
	}
	if req.UserID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}
	if len(req.Items) == 0 {
		return domain.ErrEmptyCart
	}
	return nil
}

// quotesMatch reports whether two pricing passes agree on the money that
// matters for commit.
func quotesMatch(a, b *domain.Quote) bool {
	return a.Subtotal.Equals(b.Subtotal) &&
		a.Discount.Equals(b.Discount) &&
		a.ShippingCost.Equals(b.ShippingCost) &&
		a.Total.Equals(b.Total)
}

// newOrderNumber derives the human-facing order number: KZ-YYYYMMDD-XXXXXX.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("KZ-%s-%s", now.Format("20060102"), suffix)
}
