package handlers

import (
	"net/http"

	"foodie-storefront/middleware"

	"github.com/gin-gonic/gin"
)

type AddToCartRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart returns the cart drawer
func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Cart(middleware.GetUserID(c)))
}

// AddToCart adds one unit of a menu item
func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.store.AddToCart(middleware.GetUserID(c), req.ItemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateCartItem sets a line's quantity; zero or less removes it
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.store.UpdateQuantity(middleware.GetUserID(c), c.Param("itemId"), *req.Quantity))
}

// RemoveCartItem drops a line from the cart
func (h *Handler) RemoveCartItem(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.RemoveFromCart(middleware.GetUserID(c), c.Param("itemId")))
}

// ClearCart empties the cart
func (h *Handler) ClearCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ClearCart(middleware.GetUserID(c)))
}
