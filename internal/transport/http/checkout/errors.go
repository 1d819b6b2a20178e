package checkout

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
)

// errorBody is the uniform error envelope. Retryable marks conflicts the
// client can resolve by re-quoting and resubmitting.
type errorBody struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}

// writeError maps domain errors onto HTTP statuses. Unrecognized errors are
// a 500 with a generic body; the real cause goes to the log, not the wire.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrStockChanged):
		c.JSON(http.StatusConflict, errorBody{Error: err.Error(), Retryable: true})

	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrAffiliateNotFound),
		errors.Is(err, domain.ErrFlashSaleNotFound):
		c.JSON(http.StatusNotFound, errorBody{Error: err.Error()})

	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrFractionalAmount),
		errors.Is(err, domain.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})

	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrIllegalTransition),
		domain.IsCouponRejection(err):
		c.JSON(http.StatusUnprocessableEntity, errorBody{Error: err.Error()})

	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
