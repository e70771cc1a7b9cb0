package handlers

import (
	"net/http"

	"foodie-storefront/checkout"
	"foodie-storefront/middleware"
	"foodie-storefront/models"

	"github.com/gin-gonic/gin"
)

type checkoutResponse struct {
	checkout.State
	Totals *models.TotalsView `json:"totals,omitempty"`
}

func (h *Handler) checkoutView(userID string) checkoutResponse {
	state := h.store.CheckoutState(userID)
	resp := checkoutResponse{State: state}
	if state.Details != nil {
		view := state.Details.Totals.Display()
		resp.Totals = &view
	}
	return resp
}

// GetCheckout returns the current checkout stage and snapshot
func (h *Handler) GetCheckout(c *gin.Context) {
	c.JSON(http.StatusOK, h.checkoutView(middleware.GetUserID(c)))
}

// BeginCheckout opens the checkout details stage
func (h *Handler) BeginCheckout(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.store.BeginCheckout(userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.checkoutView(userID))
}

// SubmitCheckoutDetails captures the checkout snapshot
func (h *Handler) SubmitCheckoutDetails(c *gin.Context) {
	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.GetUserID(c)
	if _, err := h.store.SubmitDetails(userID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.checkoutView(userID))
}

// Pay runs the simulated card payment
func (h *Handler) Pay(c *gin.Context) {
	var card models.CardDetails
	if err := c.ShouldBindJSON(&card); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	receipt, err := h.store.Pay(c.Request.Context(), middleware.GetUserID(c), card)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Payment successful",
		"receipt": receipt,
	})
}

// PlaceOrder confirms the order and starts tracking it
func (h *Handler) PlaceOrder(c *gin.Context) {
	order, err := h.store.PlaceOrder(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":        "Order placed successfully",
		"order":          newOrderView(order),
		"estimated_time": "25-30 min",
	})
}

// CancelCheckout closes the checkout without placing an order
func (h *Handler) CancelCheckout(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.store.CancelCheckout(userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.checkoutView(userID))
}
