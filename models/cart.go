package models

import "github.com/shopspring/decimal"

// CartLine is one catalog item plus a quantity (always >= 1)
type CartLine struct {
	FoodItem
	Quantity int `json:"quantity"`
}

// LineTotal is the extended price of the line
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps lines in insertion order, at most one line per item id
type Cart []CartLine

// Totals carries full precision amounts; rounding happens in Display only
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// TotalsView is the presentation form of Totals (2 decimal places)
type TotalsView struct {
	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"delivery_fee"`
	Tax         string `json:"tax"`
	Total       string `json:"total"`
}

func (t Totals) Display() TotalsView {
	return TotalsView{
		Subtotal:    t.Subtotal.StringFixed(2),
		DeliveryFee: t.DeliveryFee.StringFixed(2),
		Tax:         t.Tax.StringFixed(2),
		Total:       t.Total.StringFixed(2),
	}
}
