package handlers

import (
	"net/http"

	"foodie-storefront/statemachine"

	"github.com/gin-gonic/gin"
)

// ListCategories returns the menu tabs (public)
func (h *Handler) ListCategories(c *gin.Context) {
	categories := h.store.Categories()
	c.JSON(http.StatusOK, gin.H{"count": len(categories), "categories": categories})
}

// GetMenu returns a category's items, optionally filtered by ?search= (public)
func (h *Handler) GetMenu(c *gin.Context) {
	category := c.Param("category")
	search := c.Query("search")
	items := h.store.Menu(category, search)

	resp := gin.H{
		"category": category,
		"count":    len(items),
		"items":    items,
	}
	if len(items) == 0 {
		if search != "" {
			resp["message"] = `No items found for "` + search + `"`
		} else {
			resp["message"] = "No items in this category"
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetFlowInfo returns the checkout and order state machines for informational purposes
func (h *Handler) GetFlowInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"checkout":    statemachine.Checkout.Transitions(),
		"order":       statemachine.Orders.Transitions(),
		"description": "Storefront checkout sequence and order tracking lifecycle",
	})
}
