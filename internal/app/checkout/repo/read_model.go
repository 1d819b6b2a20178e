package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/contracts"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
	"github.com/anastacio2001/kzstore-sub000/internal/models/m_order"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/query"
)

// ReadModelImpl implements OrderReadModel for Spanner. Queries bypass the
// aggregate and serve DTOs straight off the rows.
type ReadModelImpl struct {
	client *spanner.Client
	model  *m_order.Model
}

// NewReadModel creates a new OrderReadModel implementation.
func NewReadModel(client *spanner.Client) contracts.OrderReadModel {
	return &ReadModelImpl{
		client: client,
		model:  m_order.NewModel(),
	}
}

// GetOrderByID retrieves an order DTO by ID.
func (rm *ReadModelImpl) GetOrderByID(ctx context.Context, orderID string) (*contracts.OrderDTO, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_order.TableName, spanner.Key{orderID}, rm.model.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to read order: %w", err)
	}

	var data m_order.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse order: %w", err)
	}

	return orderDataToDTO(&data)
}

// ListOrders retrieves a filtered, paginated page of orders, newest first,
// plus the unpaged total for the same filter.
func (rm *ReadModelImpl) ListOrders(ctx context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 50 // Default page size
	}
	if pageSize > 100 {
		pageSize = 100 // Max page size
	}

	builder := query.From(m_order.TableName).Select(rm.model.Columns()...)
	if filter.UserID != "" {
		builder = builder.Where(query.Eq(m_order.UserID, filter.UserID))
	}
	if filter.Status != "" {
		builder = builder.Where(query.Eq(m_order.Status, filter.Status))
	}

	total, err := rm.countOrders(ctx, builder)
	if err != nil {
		return nil, err
	}

	stmt := builder.
		OrderBy(m_order.CreatedAt, query.Desc).
		Limit(int64(pageSize)).
		Offset(filter.Offset).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	orders := make([]*contracts.OrderDTO, 0, pageSize)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate orders: %w", err)
		}

		var data m_order.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse order: %w", err)
		}

		dto, err := orderDataToDTO(&data)
		if err != nil {
			return nil, err
		}
		orders = append(orders, dto)
	}

	return &contracts.ListResult{
		Orders:     orders,
		TotalCount: total,
	}, nil
}

func (rm *ReadModelImpl) countOrders(ctx context.Context, builder *query.Builder) (int64, error) {
	iter := rm.client.Single().Query(ctx, builder.Count().Build())
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var total int64
	if err := row.Columns(&total); err != nil {
		return 0, fmt.Errorf("failed to parse order count: %w", err)
	}
	return total, nil
}

// orderDataToDTO converts an order row to the flat read shape.
func orderDataToDTO(data *m_order.Data) (*contracts.OrderDTO, error) {
	lines, err := decodeOrderLines(data.Items)
	if err != nil {
		return nil, err
	}

	dto := &contracts.OrderDTO{
		OrderID:       data.OrderID,
		OrderNumber:   data.OrderNumber,
		UserID:        data.UserID,
		UserName:      data.UserName,
		UserEmail:     data.UserEmail,
		Lines:         lines,
		Subtotal:      data.Subtotal,
		Discount:      data.Discount,
		ShippingCost:  data.ShippingCost,
		Total:         data.Total,
		DepositDue:    data.DepositDue,
		CouponCode:    data.CouponCode.StringVal,
		AffiliateCode: data.AffiliateCode.StringVal,
		PaymentMethod: data.PaymentMethod,
		TrackingCode:  data.TrackingCode.StringVal,
		Status:        data.Status,
		CreatedAt:     data.CreatedAt.UTC(),
		UpdatedAt:     data.UpdatedAt.UTC(),
	}
	if data.DeliveredAt.Valid {
		t := data.DeliveredAt.Time.UTC()
		dto.DeliveredAt = &t
	}
	if data.CancelledAt.Valid {
		t := data.CancelledAt.Time.UTC()
		dto.CancelledAt = &t
	}
	return dto, nil
}
