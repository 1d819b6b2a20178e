package list_orders

import (
	"context"
	"fmt"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/contracts"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
)

// Query handles the list orders read.
type Query struct {
	readModel contracts.OrderReadModel
}

// NewQuery creates a new list orders query.
func NewQuery(readModel contracts.OrderReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute retrieves a filtered, paginated page of orders. A status filter
// naming an unknown status is rejected rather than silently matching
// nothing.
func (q *Query) Execute(ctx context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	if filter.Status != "" && !domain.ValidStatus(domain.OrderStatus(filter.Status)) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStatus, filter.Status)
	}
	return q.readModel.ListOrders(ctx, filter)
}
