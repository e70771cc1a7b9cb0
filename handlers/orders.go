package handlers

import (
	"net/http"

	"foodie-storefront/middleware"
	"foodie-storefront/models"
	"foodie-storefront/orders"

	"github.com/gin-gonic/gin"
)

type orderView struct {
	*models.Order
	Message string            `json:"message"`
	Display models.TotalsView `json:"display_totals"`
}

func newOrderView(o *models.Order) orderView {
	totals := models.Totals{Subtotal: o.Subtotal, DeliveryFee: o.DeliveryFee, Tax: o.Tax, Total: o.Total}
	return orderView{
		Order:   o,
		Message: orders.ProgressMessage(o.Status, o.Progress),
		Display: totals.Display(),
	}
}

// GetOrder returns an order's tracking state
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.store.Order(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": newOrderView(order)})
}

// GetOrderHistory lists the user's recent orders
func (h *Handler) GetOrderHistory(c *gin.Context) {
	list, err := h.store.OrderHistory(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]orderView, len(list))
	for i := range list {
		views[i] = newOrderView(&list[i])
	}
	c.JSON(http.StatusOK, gin.H{"count": len(views), "orders": views})
}
