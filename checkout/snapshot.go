// Package checkout captures checkout snapshots, simulates card payments and
// tracks which checkout stage a session is in.
package checkout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"foodie-storefront/cart"
	"foodie-storefront/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidDetails = errors.New("invalid checkout details")
)

// Request is the checkout details form
type Request struct {
	DeliveryMode  models.DeliveryMode  `json:"delivery_mode" validate:"required,oneof=delivery pickup"`
	Name          string               `json:"name" validate:"required"`
	Phone         string               `json:"phone" validate:"required"`
	Address       string               `json:"address" validate:"required_if=DeliveryMode delivery"`
	Instructions  string               `json:"instructions"`
	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"required,oneof=card cash"`
}

// Options control how the checkout stage prices an order
type Options struct {
	Pricing cart.Pricing
	// TaxIncludesDeliveryFee taxes subtotal+fee at checkout. The cart view
	// always taxes the subtotal alone.
	TaxIncludesDeliveryFee bool
}

var validate = validator.New()

// Snapshot validates req and freezes the cart and its totals. The returned
// value shares nothing with lines.
func Snapshot(lines models.Cart, req Request, opts Options, now time.Time) (models.CheckoutDetails, error) {
	if len(lines) == 0 {
		return models.CheckoutDetails{}, ErrEmptyCart
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)
	if err := validate.Struct(req); err != nil {
		return models.CheckoutDetails{}, fmt.Errorf("%w: %v", ErrInvalidDetails, err)
	}

	frozen := make(models.Cart, len(lines))
	copy(frozen, lines)

	return models.CheckoutDetails{
		DeliveryMode: req.DeliveryMode,
		Recipient: models.Recipient{
			Name:    req.Name,
			Phone:   req.Phone,
			Address: req.Address,
		},
		Instructions:  strings.TrimSpace(req.Instructions),
		PaymentMethod: req.PaymentMethod,
		Lines:         frozen,
		Totals:        Totals(frozen, req.DeliveryMode, opts),
		CreatedAt:     now,
	}, nil
}

// Totals prices the cart for the chosen delivery mode. Pickup waives the fee.
func Totals(lines models.Cart, mode models.DeliveryMode, opts Options) models.Totals {
	subtotal := cart.Subtotal(lines)
	fee := opts.Pricing.DeliveryFee(subtotal)
	if mode == models.DeliveryModePickup {
		fee = decimal.Zero
	}
	base := subtotal
	if opts.TaxIncludesDeliveryFee {
		base = subtotal.Add(fee)
	}
	tax := opts.Pricing.Tax(base)
	return models.Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       cart.Total(subtotal, fee, tax),
	}
}
