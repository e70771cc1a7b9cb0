// Package cart holds the pricing engine and the per-session cart holders.
//
// The engine functions are pure: they never mutate the Cart they are given and
// always return a fresh slice. Operations on an id that is not in the cart are
// silent no-ops.
package cart

import (
	"foodie-storefront/models"

	"github.com/shopspring/decimal"
)

// AddItem bumps the quantity of an existing line or appends a new line with quantity 1
func AddItem(c models.Cart, item models.FoodItem) models.Cart {
	out := make(models.Cart, 0, len(c)+1)
	found := false
	for _, line := range c {
		if line.ID == item.ID {
			line.Quantity++
			found = true
		}
		out = append(out, line)
	}
	if !found {
		out = append(out, models.CartLine{FoodItem: item, Quantity: 1})
	}
	return out
}

// RemoveItem drops the line for itemID, if any
func RemoveItem(c models.Cart, itemID string) models.Cart {
	out := make(models.Cart, 0, len(c))
	for _, line := range c {
		if line.ID != itemID {
			out = append(out, line)
		}
	}
	return out
}

// SetQuantity replaces the quantity of the line for itemID.
// A quantity <= 0 removes the line.
func SetQuantity(c models.Cart, itemID string, quantity int) models.Cart {
	if quantity <= 0 {
		return RemoveItem(c, itemID)
	}
	out := make(models.Cart, 0, len(c))
	for _, line := range c {
		if line.ID == itemID {
			line.Quantity = quantity
		}
		out = append(out, line)
	}
	return out
}

func Subtotal(c models.Cart) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range c {
		sum = sum.Add(line.LineTotal())
	}
	return sum
}

func TotalItemCount(c models.Cart) int {
	n := 0
	for _, line := range c {
		n += line.Quantity
	}
	return n
}

// Total is a plain sum, no rounding
func Total(subtotal, deliveryFee, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Add(deliveryFee).Add(tax)
}
