package cart

import (
	"foodie-storefront/models"

	"github.com/shopspring/decimal"
)

// Pricing holds the fee and tax constants of the storefront
type Pricing struct {
	Fee                   decimal.Decimal `yaml:"delivery_fee"`
	FreeDeliveryThreshold decimal.Decimal `yaml:"free_delivery_threshold"`
	TaxRate               decimal.Decimal `yaml:"tax_rate"`
}

// DefaultPricing: 2.99 fee below a 25.00 subtotal, 8% tax
func DefaultPricing() Pricing {
	return Pricing{
		Fee:                   decimal.RequireFromString("2.99"),
		FreeDeliveryThreshold: decimal.NewFromInt(25),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

// DeliveryFee is waived once the subtotal reaches the threshold
func (p Pricing) DeliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.LessThan(p.FreeDeliveryThreshold) {
		return p.Fee
	}
	return decimal.Zero
}

// Tax is a flat rate over the given base
func (p Pricing) Tax(base decimal.Decimal) decimal.Decimal {
	return base.Mul(p.TaxRate)
}

// Totals computes the cart-level totals. The cart-level tax base never
// includes the delivery fee.
func (p Pricing) Totals(c models.Cart) models.Totals {
	subtotal := Subtotal(c)
	fee := p.DeliveryFee(subtotal)
	tax := p.Tax(subtotal)
	return models.Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       Total(subtotal, fee, tax),
	}
}
