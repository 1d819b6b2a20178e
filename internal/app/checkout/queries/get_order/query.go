package get_order

import (
	"context"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/contracts"
)

// Query handles the get order read.
type Query struct {
	readModel contracts.OrderReadModel
}

// NewQuery creates a new get order query.
func NewQuery(readModel contracts.OrderReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute retrieves an order by ID.
func (q *Query) Execute(ctx context.Context, orderID string) (*contracts.OrderDTO, error) {
	return q.readModel.GetOrderByID(ctx, orderID)
}
