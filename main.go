package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodie-storefront/cart"
	"foodie-storefront/catalog"
	"foodie-storefront/checkout"
	"foodie-storefront/config"
	"foodie-storefront/handlers"
	"foodie-storefront/middleware"
	"foodie-storefront/orders"
	"foodie-storefront/routes"
	"foodie-storefront/session"
	"foodie-storefront/storage"
	"foodie-storefront/storefront"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Set Gin mode
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// On-device storage
	db, err := config.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}

	// Session is read once at startup
	sessions := session.NewStore(storage.NewKV(db), session.Delays{
		Login:  cfg.Delays.Login,
		Signup: cfg.Delays.Signup,
	})
	if err := sessions.Load(ctx); err != nil {
		log.Fatal("Failed to restore session:", err)
	}
	if user, ok := sessions.Current(); ok {
		log.Printf("👋 Restored session for %s", user.Email)
	}

	if !cfg.CheckoutTaxIncludesDeliveryFee {
		log.Println("⚠️  Checkout tax excludes the delivery fee; totals match the cart view")
	}

	store := storefront.New(
		catalog.Default(),
		cart.NewCarts(cfg.Pricing),
		sessions,
		checkout.NewPayments(cfg.Delays.Payment),
		orders.NewTracker(db, cfg.Delays.Order),
		checkout.Options{Pricing: cfg.Pricing, TaxIncludesDeliveryFee: cfg.CheckoutTaxIncludesDeliveryFee},
	)
	defer store.Close()

	tokens := middleware.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for the storefront UI
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Foodie Storefront",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍕 Welcome to FoodieApp - Delicious Food Delivered",
			"docs":    "/api/flow",
			"health":  "/health",
		})
	})

	// Register all routes
	routes.SetupRoutes(r, handlers.New(store, tokens), routes.NewAuth(tokens, sessions))

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
