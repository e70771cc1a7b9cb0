package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"foodie-storefront/cart"
	"foodie-storefront/catalog"
	"foodie-storefront/checkout"
	"foodie-storefront/config"
	"foodie-storefront/handlers"
	"foodie-storefront/middleware"
	"foodie-storefront/orders"
	"foodie-storefront/session"
	"foodie-storefront/storage"
	"foodie-storefront/storefront"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.OpenDB(filepath.Join(t.TempDir(), "foodie.db"))
	require.NoError(t, err)

	pricing := cart.DefaultPricing()
	sessions := session.NewStore(storage.NewKV(db), session.Delays{})
	store := storefront.New(
		catalog.Default(),
		cart.NewCarts(pricing),
		sessions,
		checkout.NewPayments(0),
		orders.NewTracker(db, orders.Delays{Confirm: 50 * time.Millisecond, Step: 50}),
		checkout.Options{Pricing: pricing, TaxIncludesDeliveryFee: true},
	)
	t.Cleanup(store.Close)

	tokens := middleware.NewTokens("test-secret", time.Hour)
	r := gin.New()
	SetupRoutes(r, handlers.New(store, tokens), NewAuth(tokens, sessions))
	return &testServer{t: t, router: r}
}

func (s *testServer) do(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

func (s *testServer) login() {
	s.t.Helper()
	w, body := s.do(http.MethodPost, "/api/auth/login", gin.H{"email": "jane@example.com", "password": "secret1"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	s.token = body["token"].(string)
}

func TestCatalogIsPublic(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(http.MethodGet, "/api/categories", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 6, body["count"])

	w, body = s.do(http.MethodGet, "/api/categories/pizza/items?search=PEPPERONI", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["count"])

	w, body = s.do(http.MethodGet, "/api/categories/pizza/items?search=sushi", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["count"])
	assert.Equal(t, `No items found for "sushi"`, body["message"])

	w, _ = s.do(http.MethodGet, "/api/flow", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(http.MethodPost, "/api/auth/login", gin.H{"email": "jane@example.com", "password": "12345"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, body["success"])

	w, _ = s.do(http.MethodGet, "/api/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	s.login()
	w, body = s.do(http.MethodGet, "/api/profile", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	user := body["user"].(map[string]any)
	assert.Equal(t, "jane", user["name"])
}

func TestSignupValidation(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(http.MethodPost, "/api/auth/signup", gin.H{"name": "", "email": "jane@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, body := s.do(http.MethodPost, "/api/auth/signup", gin.H{"name": "Jane", "email": "jane@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, body["token"])
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	s.login()

	w, _ := s.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/api/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.login()

	w, body := s.do(http.MethodPost, "/api/cart/items", gin.H{"item_id": "1"})
	require.Equal(t, http.StatusOK, w.Code)
	s.do(http.MethodPost, "/api/cart/items", gin.H{"item_id": "1"})
	w, body = s.do(http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, body["total_items"])
	totals := body["totals"].(map[string]any)
	assert.Equal(t, "37.98", totals["subtotal"])
	assert.Equal(t, "0.00", totals["delivery_fee"])
	assert.Equal(t, "3.04", totals["tax"])
	assert.Equal(t, "41.02", totals["total"])

	w, _ = s.do(http.MethodPost, "/api/cart/items", gin.H{"item_id": "404"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodPut, "/api/cart/items/1", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = s.do(http.MethodPut, "/api/cart/items/1", gin.H{"quantity": 0})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["total_items"])

	s.do(http.MethodPost, "/api/cart/items", gin.H{"item_id": "13"})
	w, body = s.do(http.MethodDelete, "/api/cart/items/missing", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["total_items"])

	w, body = s.do(http.MethodDelete, "/api/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["total_items"])
}

func TestCheckoutFlow(t *testing.T) {
	s := newTestServer(t)
	s.login()

	w, _ := s.do(http.MethodPost, "/api/checkout", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "empty cart")

	s.do(http.MethodPost, "/api/cart/items", gin.H{"item_id": "2"})

	w, body := s.do(http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "details", body["stage"])

	w, _ = s.do(http.MethodPost, "/api/checkout/order", nil)
	assert.Equal(t, http.StatusConflict, w.Code, "order before details")

	w, _ = s.do(http.MethodPut, "/api/checkout/details", gin.H{
		"delivery_mode": "delivery", "name": "John Doe", "phone": "555", "payment_method": "card",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing address")

	w, body = s.do(http.MethodPut, "/api/checkout/details", gin.H{
		"delivery_mode":  "delivery",
		"name":           "John Doe",
		"phone":          "+1 (555) 123-4567",
		"address":        "123 Main St",
		"payment_method": "card",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "payment", body["stage"])
	totals := body["totals"].(map[string]any)
	// (15.99 + 2.99) * 0.08 = 1.5184
	assert.Equal(t, "1.52", totals["tax"])
	assert.Equal(t, "20.50", totals["total"])

	w, _ = s.do(http.MethodPost, "/api/checkout/payment", gin.H{
		"card_number": "4242 4242 4242 4242", "expiry_month": "12", "expiry_year": "2099",
		"cvv": "12", "cardholder_name": "John Doe",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = s.do(http.MethodPost, "/api/checkout/payment", gin.H{
		"card_number": "4242 4242 4242 4242", "expiry_month": "12", "expiry_year": "2099",
		"cvv": "123", "cardholder_name": "John Doe",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	receipt := body["receipt"].(map[string]any)
	assert.Equal(t, "4242", receipt["last4"])

	w, body = s.do(http.MethodPost, "/api/checkout/order", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := body["order"].(map[string]any)
	orderID := order["id"].(string)
	assert.Equal(t, "confirmed", order["status"])

	require.Eventually(t, func() bool {
		_, body := s.do(http.MethodGet, "/api/orders/"+orderID, nil)
		o, ok := body["order"].(map[string]any)
		return ok && o["status"] == "completed"
	}, 5*time.Second, 20*time.Millisecond)

	w, body = s.do(http.MethodGet, "/api/checkout", nil)
	assert.Equal(t, "browsing", body["stage"])
	w, body = s.do(http.MethodGet, "/api/cart", nil)
	assert.EqualValues(t, 0, body["total_items"])

	w, body = s.do(http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["count"])

	w, _ = s.do(http.MethodGet, "/api/orders/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelCheckout(t *testing.T) {
	s := newTestServer(t)
	s.login()
	s.do(http.MethodPost, "/api/cart/items", gin.H{"item_id": "2"})
	s.do(http.MethodPost, "/api/checkout", nil)

	w, body := s.do(http.MethodDelete, "/api/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "browsing", body["stage"])

	// nothing open any more
	w, body = s.do(http.MethodDelete, "/api/checkout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "browsing", body["stage"])
}

func TestUpdateProfile(t *testing.T) {
	s := newTestServer(t)
	s.login()

	w, _ := s.do(http.MethodPut, "/api/profile", gin.H{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body := s.do(http.MethodPut, "/api/profile", gin.H{"name": "Jane Doe", "phone": "555", "address": "1 Main St"})
	require.Equal(t, http.StatusOK, w.Code)
	user := body["user"].(map[string]any)
	assert.Equal(t, "Jane Doe", user["name"])
}
