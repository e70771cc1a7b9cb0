package models

import "github.com/shopspring/decimal"

// Category is a menu tab of the storefront
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// FoodItem is a read-only catalog entry
type FoodItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Rating      float64         `json:"rating"`
	CookTime    string          `json:"cook_time"`
	IsPopular   bool            `json:"is_popular,omitempty"`
}
