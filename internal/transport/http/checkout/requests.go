package checkout

import (
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/contracts"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
)

// CartItemRequest is one cart line in a quote or placement payload.
type CartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

// QuoteRequest is the payload for POST /api/v1/checkout/quote.
type QuoteRequest struct {
	Items      []CartItemRequest `json:"items" binding:"required"`
	CouponCode string            `json:"coupon_code"`
}

// PlaceOrderRequest is the payload for POST /api/v1/orders. RequestID is the
// idempotency key; clients keep it stable across retries of the same
// checkout.
type PlaceOrderRequest struct {
	RequestID     string            `json:"request_id" binding:"required"`
	UserID        string            `json:"user_id" binding:"required"`
	UserName      string            `json:"user_name"`
	UserEmail     string            `json:"user_email"`
	PaymentMethod string            `json:"payment_method"`
	AffiliateCode string            `json:"affiliate_code"`
	Items         []CartItemRequest `json:"items" binding:"required"`
	CouponCode    string            `json:"coupon_code"`
}

// UpdateStatusRequest is the payload for PATCH /api/v1/orders/:id/status.
type UpdateStatusRequest struct {
	Status       string `json:"status" binding:"required"`
	TrackingCode string `json:"tracking_code"`
}

// QuoteLineResponse is one priced line of a quote response.
type QuoteLineResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int64  `json:"quantity"`
	LineTotal   int64  `json:"line_total"`
	IsFlashSale bool   `json:"is_flash_sale"`
	FlashSaleID string `json:"flash_sale_id,omitempty"`
	IsPreOrder  bool   `json:"is_pre_order,omitempty"`
}

// QuoteResponse is the body for a priced cart. All amounts are whole
// kwanzas.
type QuoteResponse struct {
	Lines        []QuoteLineResponse `json:"items"`
	Subtotal     int64               `json:"subtotal"`
	Discount     int64               `json:"discount"`
	ShippingCost int64               `json:"shipping_cost"`
	Total        int64               `json:"total"`
	CouponCode   string              `json:"coupon_code,omitempty"`
	DepositDue   int64               `json:"deposit_due,omitempty"`
}

func toCartItems(items []CartItemRequest) []domain.CartItem {
	out := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		out = append(out, domain.CartItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return out
}

func toQuoteResponse(quote *domain.Quote) *QuoteResponse {
	resp := &QuoteResponse{
		Lines:        make([]QuoteLineResponse, 0, len(quote.Lines)),
		Subtotal:     quote.Subtotal.Amount(),
		Discount:     quote.Discount.Amount(),
		ShippingCost: quote.ShippingCost.Amount(),
		Total:        quote.Total.Amount(),
		CouponCode:   quote.CouponCode,
		DepositDue:   quote.DepositDue.Amount(),
	}
	for _, line := range quote.Lines {
		resp.Lines = append(resp.Lines, QuoteLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice.Amount(),
			Quantity:    line.Quantity,
			LineTotal:   line.LineTotal.Amount(),
			IsFlashSale: line.IsFlashSale,
			FlashSaleID: line.FlashSaleID,
			IsPreOrder:  line.IsPreOrder,
		})
	}
	return resp
}

// toOrderResponse flattens an order aggregate into the same DTO the read
// model serves, so placement and lookup answer identical shapes.
func toOrderResponse(order *domain.Order) *contracts.OrderDTO {
	return &contracts.OrderDTO{
		OrderID:       order.ID(),
		OrderNumber:   order.OrderNumber(),
		UserID:        order.UserID(),
		UserName:      order.UserName(),
		UserEmail:     order.UserEmail(),
		Lines:         order.Lines(),
		Subtotal:      order.Subtotal().Amount(),
		Discount:      order.Discount().Amount(),
		ShippingCost:  order.ShippingCost().Amount(),
		Total:         order.Total().Amount(),
		DepositDue:    order.DepositDue().Amount(),
		CouponCode:    order.CouponCode(),
		AffiliateCode: order.AffiliateCode(),
		PaymentMethod: order.PaymentMethod(),
		TrackingCode:  order.TrackingCode(),
		Status:        string(order.Status()),
		CreatedAt:     order.CreatedAt(),
		UpdatedAt:     order.UpdatedAt(),
		DeliveredAt:   order.DeliveredAt(),
		CancelledAt:   order.CancelledAt(),
	}
}
