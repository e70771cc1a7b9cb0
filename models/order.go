package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the simulated tracking states of a placed order
type OrderStatus string

const (
	StatusOrdering  OrderStatus = "ordering"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusCompleted OrderStatus = "completed"
)

type Order struct {
	ID            string        `json:"id" gorm:"primaryKey"`
	UserID        string        `json:"user_id" gorm:"index;not null"`
	Status        OrderStatus   `json:"status" gorm:"not null;default:'confirmed'"`
	Progress      int           `json:"progress"`
	DeliveryMode  DeliveryMode  `json:"delivery_mode" gorm:"not null"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"not null"`
	RecipientName string        `json:"recipient_name"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	Instructions  string        `json:"instructions"`
	// amounts are stored as text so sqlite keeps the exact decimal
	Subtotal    decimal.Decimal `json:"subtotal" gorm:"type:text;not null"`
	DeliveryFee decimal.Decimal `json:"delivery_fee" gorm:"type:text;not null"`
	Tax         decimal.Decimal `json:"tax" gorm:"type:text;not null"`
	Total       decimal.Decimal `json:"total" gorm:"type:text;not null"`
	Items       []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

type OrderItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	OrderID    string          `json:"order_id" gorm:"index;not null"`
	FoodItemID string          `json:"food_item_id" gorm:"not null"`
	Name       string          `json:"name"`                                // snapshot name
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:text;not null"` // snapshot price at time of order
	Quantity   int             `json:"quantity" gorm:"not null"`
}
