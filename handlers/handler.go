package handlers

import (
	"context"
	"errors"
	"net/http"

	"foodie-storefront/checkout"
	"foodie-storefront/middleware"
	"foodie-storefront/orders"
	"foodie-storefront/session"
	"foodie-storefront/statemachine"
	"foodie-storefront/storefront"

	"github.com/gin-gonic/gin"
)

// Handler exposes the storefront over HTTP
type Handler struct {
	store  *storefront.Storefront
	tokens *middleware.Tokens
}

func New(store *storefront.Storefront, tokens *middleware.Tokens) *Handler {
	return &Handler{store: store, tokens: tokens}
}

// respondError maps domain errors to HTTP statuses
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storefront.ErrNotSignedIn), errors.Is(err, session.ErrNoSession):
		status = http.StatusUnauthorized
	case errors.Is(err, storefront.ErrForeignOrder):
		status = http.StatusForbidden
	case errors.Is(err, storefront.ErrUnknownItem), errors.Is(err, orders.ErrOrderNotFound):
		status = http.StatusNotFound
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInvalidDetails),
		errors.Is(err, checkout.ErrInvalidCard),
		errors.Is(err, session.ErrInvalidProfile):
		status = http.StatusBadRequest
	case errors.Is(err, checkout.ErrNoCheckout),
		errors.Is(err, checkout.ErrOrderPlaced),
		errors.Is(err, checkout.ErrPaymentInProgress),
		errors.Is(err, statemachine.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusRequestTimeout
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "Something went wrong, please try again"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
