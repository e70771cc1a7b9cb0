package routes

import (
	"foodie-storefront/handlers"
	"foodie-storefront/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, auth gin.HandlerFunc) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Session
		public.POST("/auth/signup", h.Signup)
		public.POST("/auth/login", h.Login)

		// Catalog (browsable before signing in)
		public.GET("/categories", h.ListCategories)
		public.GET("/categories/:category/items", h.GetMenu)

		// Flow info (great for docs/Postman)
		public.GET("/flow", h.GetFlowInfo)
	}

	// ── Session routes ─────────────────────────────────────────────
	signedIn := r.Group("/api")
	signedIn.Use(auth)
	{
		signedIn.POST("/auth/logout", h.Logout)
		signedIn.GET("/profile", h.GetProfile)
		signedIn.PUT("/profile", h.UpdateProfile)
	}

	// ── Cart drawer ────────────────────────────────────────────────
	cart := r.Group("/api/cart")
	cart.Use(auth)
	{
		cart.GET("", h.GetCart)
		cart.POST("/items", h.AddToCart)
		cart.PUT("/items/:itemId", h.UpdateCartItem)
		cart.DELETE("/items/:itemId", h.RemoveCartItem)
		cart.DELETE("", h.ClearCart)
	}

	// ── Checkout: details → payment → confirmation ─────────────────
	checkout := r.Group("/api/checkout")
	checkout.Use(auth)
	{
		checkout.GET("", h.GetCheckout)
		checkout.POST("", h.BeginCheckout)
		checkout.PUT("/details", h.SubmitCheckoutDetails)
		checkout.POST("/payment", h.Pay)
		checkout.POST("/order", h.PlaceOrder)
		checkout.DELETE("", h.CancelCheckout)
	}

	// ── Order tracking ─────────────────────────────────────────────
	orders := r.Group("/api/orders")
	orders.Use(auth)
	{
		orders.GET("", h.GetOrderHistory)
		orders.GET("/:id", h.GetOrder)
	}
}

// NewAuth builds the session gate shared by every protected group
func NewAuth(tokens *middleware.Tokens, sessions middleware.SessionSource) gin.HandlerFunc {
	return middleware.AuthRequired(tokens, sessions)
}
