package cart

import (
	"sync"

	"foodie-storefront/models"

	"github.com/shopspring/decimal"
)

// Holder owns one session's cart. Mutations go through the engine; derived
// totals are recomputed on every read, never cached.
type Holder struct {
	mu      sync.Mutex
	items   models.Cart
	pricing Pricing
}

func NewHolder(pricing Pricing) *Holder {
	return &Holder{items: models.Cart{}, pricing: pricing}
}

func (h *Holder) AddItem(item models.FoodItem) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = AddItem(h.items, item)
}

func (h *Holder) RemoveItem(itemID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = RemoveItem(h.items, itemID)
}

func (h *Holder) UpdateQuantity(itemID string, quantity int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = SetQuantity(h.items, itemID, quantity)
}

func (h *Holder) ClearCart() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = models.Cart{}
}

// Items returns a copy of the lines in insertion order
func (h *Holder) Items() models.Cart {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(models.Cart, len(h.items))
	copy(out, h.items)
	return out
}

func (h *Holder) Subtotal() decimal.Decimal {
	return Subtotal(h.Items())
}

func (h *Holder) TotalItemCount() int {
	return TotalItemCount(h.Items())
}

func (h *Holder) DeliveryFee() decimal.Decimal {
	return h.pricing.DeliveryFee(h.Subtotal())
}

func (h *Holder) Tax() decimal.Decimal {
	return h.pricing.Tax(h.Subtotal())
}

func (h *Holder) Total() decimal.Decimal {
	return h.Totals().Total
}

// Totals computes all derived amounts from a single read of the lines
func (h *Holder) Totals() models.Totals {
	return h.pricing.Totals(h.Items())
}

// Carts maps a session user id to its holder
type Carts struct {
	mu      sync.Mutex
	holders map[string]*Holder
	pricing Pricing
}

func NewCarts(pricing Pricing) *Carts {
	return &Carts{holders: make(map[string]*Holder), pricing: pricing}
}

// For returns the holder of userID, creating an empty one on first use
func (c *Carts) For(userID string) *Holder {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.holders[userID]
	if !ok {
		h = NewHolder(c.pricing)
		c.holders[userID] = h
	}
	return h
}

// Drop discards the holder of userID (logout)
func (c *Carts) Drop(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.holders, userID)
}

func (c *Carts) Pricing() Pricing {
	return c.pricing
}
