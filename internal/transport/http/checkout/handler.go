package checkout

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/contracts"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/queries/get_order"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/queries/list_orders"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/usecases/place_order"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/usecases/quote_cart"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/usecases/update_order_status"
)

// Handler serves the checkout HTTP API.
type Handler struct {
	quoteCart    *quote_cart.Interactor
	placeOrder   *place_order.Interactor
	updateStatus *update_order_status.Interactor
	getOrder     *get_order.Query
	listOrders   *list_orders.Query
	logger       *zap.Logger
}

// NewHandler creates a new checkout HTTP handler.
func NewHandler(
	quoteCart *quote_cart.Interactor,
	placeOrder *place_order.Interactor,
	updateStatus *update_order_status.Interactor,
	getOrder *get_order.Query,
	listOrders *list_orders.Query,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		quoteCart:    quoteCart,
		placeOrder:   placeOrder,
		updateStatus: updateStatus,
		getOrder:     getOrder,
		listOrders:   listOrders,
		logger:       logger,
	}
}

// Register mounts the checkout routes on the router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/checkout/quote", h.Quote)
	rg.POST("/orders", h.PlaceOrder)
	rg.GET("/orders", h.ListOrders)
	rg.GET("/orders/:id", h.GetOrder)
	rg.PATCH("/orders/:id/status", h.UpdateStatus)
}

// Quote handles POST /api/v1/checkout/quote.
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	quote, err := h.quoteCart.Execute(c.Request.Context(), &quote_cart.Request{
		Items:      toCartItems(req.Items),
		CouponCode: req.CouponCode,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// PlaceOrder handles POST /api/v1/orders. A replayed idempotency key answers
// 200 with the original order; a fresh placement answers 201.
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	result, err := h.placeOrder.Execute(c.Request.Context(), &place_order.Request{
		RequestID:     req.RequestID,
		UserID:        req.UserID,
		UserName:      req.UserName,
		UserEmail:     req.UserEmail,
		PaymentMethod: req.PaymentMethod,
		AffiliateCode: req.AffiliateCode,
		Items:         toCartItems(req.Items),
		CouponCode:    req.CouponCode,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Idempotent {
		status = http.StatusOK
	}
	c.JSON(status, toOrderResponse(result.Order))
}

// GetOrder handles GET /api/v1/orders/:id.
func (h *Handler) GetOrder(c *gin.Context) {
	dto, err := h.getOrder.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// ListOrders handles GET /api/v1/orders.
func (h *Handler) ListOrders(c *gin.Context) {
	filter := &contracts.ListFilter{
		UserID: c.Query("user_id"),
		Status: c.Query("status"),
	}
	if v := c.Query("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.PageSize = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			filter.Offset = n
		}
	}

	result, err := h.listOrders.Execute(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":      result.Orders,
		"total_count": result.TotalCount,
	})
}

// UpdateStatus handles PATCH /api/v1/orders/:id/status.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	order, err := h.updateStatus.Execute(c.Request.Context(), &update_order_status.Request{
		OrderID:      c.Param("id"),
		NextStatus:   req.Status,
		TrackingCode: req.TrackingCode,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}
