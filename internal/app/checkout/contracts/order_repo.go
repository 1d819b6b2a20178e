package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
)

// OrderRepository defines persistence for order aggregates. Repositories
// return mutations, they don't apply them; the use case commits everything
// in one plan.
type OrderRepository interface {
	// InsertMut creates a mutation for inserting a new order snapshot.
	InsertMut(order *domain.Order) (*spanner.Mutation, error)

	// UpdateMut creates a mutation for updating an order (only dirty fields).
	UpdateMut(order *domain.Order) *spanner.Mutation

	// GetByID retrieves an order by id, reconstructing the aggregate.
	// ErrOrderNotFound when absent.
	GetByID(ctx context.Context, tx Tx, orderID string) (*domain.Order, error)

	// GetByRequestID retrieves the order created under an idempotency key.
	// ErrOrderNotFound when the key has never committed.
	GetByRequestID(ctx context.Context, tx Tx, requestID string) (*domain.Order, error)
}
