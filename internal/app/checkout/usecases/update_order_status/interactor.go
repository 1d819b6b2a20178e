package update_order_status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/contracts"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/clock"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/committer"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/metrics"
)

// Request contains the data needed to move an order along its lifecycle.
// TrackingCode is only meaningful with the shipped transition.
type Request struct {
	OrderID      string
	NextStatus   string
	TrackingCode string
}

// Interactor handles order status transitions. The transition table lives on
// the aggregate; this use case drives the side effects that must land in the
// same commit: stock restoration on cancellation, the affiliate commission on
// delivery, and the commission void on refund. Re-running a transition can
// never duplicate a side effect because the guards re-read state under the
// transaction's row locks.
type Interactor struct {
	catalog        contracts.Catalog
	couponRepo     contracts.CouponRepository
	orderRepo      contracts.OrderRepository
	affiliateRepo  contracts.AffiliateRepository
	commissionRepo contracts.CommissionRepository
	outboxRepo     contracts.OutboxRepository
	committer      *committer.Committer
	clock          clock.Clock
}

// NewInteractor creates a new update order status interactor.
func NewInteractor(
	catalog contracts.Catalog,
	couponRepo contracts.CouponRepository,
	orderRepo contracts.OrderRepository,
	affiliateRepo contracts.AffiliateRepository,
	commissionRepo contracts.CommissionRepository,
	outboxRepo contracts.OutboxRepository,
	committer *committer.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		catalog:        catalog,
		couponRepo:     couponRepo,
		orderRepo:      orderRepo,
		affiliateRepo:  affiliateRepo,
		commissionRepo: commissionRepo,
		outboxRepo:     outboxRepo,
		committer:      committer,
		clock:          clock,
	}
}

// Execute applies the transition and its side effects atomically and returns
// the updated order.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Order, error) {
	next := domain.OrderStatus(req.NextStatus)

	var updated *domain.Order
	var committedEvents []domain.DomainEvent
	err := i.committer.InTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		updated = nil
		committedEvents = nil

		order, err := i.orderRepo.GetByID(ctx, txn, req.OrderID)
		if err != nil {
			return err
		}

		now := i.clock.Now()
		if err := order.Transition(next, now); err != nil {
			return err
		}
		if next == domain.StatusShipped && req.TrackingCode != "" {
			order.SetTrackingCode(req.TrackingCode, now)
		}

		plan := committer.NewPlan()
		plan.Add(i.orderRepo.UpdateMut(order))

		events := append([]domain.DomainEvent{}, order.DomainEvents()...)

		var sideEffectEvents []domain.DomainEvent
		switch next {
		case domain.StatusCancelled:
			sideEffectEvents, err = i.restoreStock(ctx, txn, order, plan)
		case domain.StatusDelivered:
			sideEffectEvents, err = i.recordCommission(ctx, txn, order, plan)
		case domain.StatusRefunded:
			sideEffectEvents, err = i.voidCommission(ctx, txn, order, plan)
		}
		if err != nil {
			return err
		}
		events = append(events, sideEffectEvents...)

		for _, event := range events {
			payload, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("failed to serialize event: %w", err)
			}
			plan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, string(payload))))
		}

		if err := txn.BufferWrite(plan.Mutations()); err != nil {
			return fmt.Errorf("failed to buffer status writes: %w", err)
		}
		updated = order
		committedEvents = events
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.StatusTransitions.WithLabelValues(string(next)).Inc()
	for _, event := range committedEvents {
		if _, ok := event.(*domain.CommissionCreatedEvent); ok {
			metrics.CommissionsCreated.Inc()
		}
	}
	return updated, nil
}

// restoreStock returns every reserved unit to the catalog: product stock back
// up, flash-sale counters and coupon usage back down. Runs only on the
// cancelled transition, which the state machine admits exactly once per
// order, so the restoration cannot double-apply.
func (i *Interactor) restoreStock(ctx context.Context, txn *spanner.ReadWriteTransaction, order *domain.Order, plan *committer.CommitPlan) ([]domain.DomainEvent, error) {
	now := i.clock.Now()
	var events []domain.DomainEvent

	perProduct := make(map[string]int64)
	perSale := make(map[string]int64)
	for _, line := range order.Lines() {
		perProduct[line.ProductID] += line.Quantity
		if line.IsFlashSale {
			perSale[line.FlashSaleID] += line.Quantity
		}
		events = append(events, &domain.StockRestoredEvent{
			OrderID:    order.ID(),
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			RestoredAt: now,
		})
	}

	for productID, quantity := range perProduct {
		product, err := i.catalog.GetProduct(ctx, txn, productID)
		if err != nil {
			// A product removed from the catalog after purchase has no row
			// to restore into; the rest of the cancellation still applies.
			if errors.Is(err, domain.ErrProductNotFound) {
				continue
			}
			return nil, err
		}
		plan.Add(i.catalog.UpdateStockMut(productID, product.Stock+quantity))
	}

	for saleID, quantity := range perSale {
		sale, err := i.catalog.GetFlashSale(ctx, txn, saleID)
		if err != nil {
			if errors.Is(err, domain.ErrFlashSaleNotFound) {
				continue
			}
			return nil, err
		}
		restored := sale.StockSold - quantity
		if restored < 0 {
			restored = 0
		}
		plan.Add(i.catalog.UpdateStockSoldMut(saleID, restored))
	}

	if order.CouponCode() != "" {
		coupon, err := i.couponRepo.GetByCode(ctx, txn, order.CouponCode())
		if err == nil && coupon.UsedCount > 0 {
			plan.Add(i.couponRepo.UpdateUsedCountMut(coupon.Code, coupon.UsedCount-1))
		} else if err != nil && !errors.Is(err, domain.ErrCouponNotFound) {
			return nil, err
		}
	}

	return events, nil
}

// recordCommission creates the affiliate commission for a delivered order.
// The per-order existence check runs under the transaction's locks, so a
// retried delivered transition finds the earlier commission and does
// nothing.
func (i *Interactor) recordCommission(ctx context.Context, txn *spanner.ReadWriteTransaction, order *domain.Order, plan *committer.CommitPlan) ([]domain.DomainEvent, error) {
	if !order.HasAffiliate() {
		return nil, nil
	}

	existing, err := i.commissionRepo.GetByOrderID(ctx, txn, order.ID())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, nil
	}

	affiliate, err := i.affiliateRepo.GetByCode(ctx, txn, order.AffiliateCode())
	if err != nil {
		// The attribution outlived the affiliate account; deliver without a
		// commission.
		if errors.Is(err, domain.ErrAffiliateNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !affiliate.Active {
		return nil, nil
	}

	now := i.clock.Now()
	commission := domain.NewCommission(uuid.New().String(), affiliate, order, now)
	plan.Add(i.commissionRepo.InsertMut(commission))

	stats, err := i.affiliateRepo.GetStats(ctx, txn, affiliate.ID)
	if err != nil {
		return nil, err
	}
	stats.TotalSales += order.Total().Amount()
	stats.TotalCommission += commission.Amount.Amount()
	stats.PendingCommission += commission.Amount.Amount()
	plan.Add(i.affiliateRepo.UpdateStatsMut(affiliate.ID, stats))

	return []domain.DomainEvent{&domain.CommissionCreatedEvent{
		CommissionID: commission.ID,
		AffiliateID:  affiliate.ID,
		OrderID:      order.ID(),
		Amount:       commission.Amount.Amount(),
		CreatedAt:    now,
	}}, nil
}

// voidCommission cancels a still-unpaid commission when the order is
// refunded. A commission already paid out stays on the books; clawing it
// back is a finance process, not a checkout write.
func (i *Interactor) voidCommission(ctx context.Context, txn *spanner.ReadWriteTransaction, order *domain.Order, plan *committer.CommitPlan) ([]domain.DomainEvent, error) {
	commission, err := i.commissionRepo.GetByOrderID(ctx, txn, order.ID())
	if err != nil {
		return nil, err
	}
	if commission == nil || !commission.Cancellable() {
		return nil, nil
	}

	plan.Add(i.commissionRepo.UpdateStatusMut(commission.ID, domain.CommissionCancelled))

	stats, err := i.affiliateRepo.GetStats(ctx, txn, commission.AffiliateID)
	if err != nil {
		if errors.Is(err, domain.ErrAffiliateNotFound) {
			return nil, nil
		}
		return nil, err
	}
	stats.TotalCommission -= commission.Amount.Amount()
	stats.PendingCommission -= commission.Amount.Amount()
	if stats.TotalCommission < 0 {
		stats.TotalCommission = 0
	}
	if stats.PendingCommission < 0 {
		stats.PendingCommission = 0
	}
	plan.Add(i.affiliateRepo.UpdateStatsMut(commission.AffiliateID, stats))

	now := i.clock.Now()
	return []domain.DomainEvent{&domain.CommissionCancelledEvent{
		CommissionID: commission.ID,
		OrderID:      order.ID(),
		CancelledAt:  now,
	}}, nil
}
