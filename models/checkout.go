package models

import "time"

// DeliveryMode selects how the order reaches the customer
type DeliveryMode string

const (
	DeliveryModeDelivery DeliveryMode = "delivery"
	DeliveryModePickup   DeliveryMode = "pickup"
)

// PaymentMethod selects whether the payment stage is shown
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

type Recipient struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CheckoutDetails is the checkout snapshot. It is built once per checkout attempt
// and never changes afterwards, even if the cart does.
type CheckoutDetails struct {
	DeliveryMode  DeliveryMode  `json:"delivery_mode"`
	Recipient     Recipient     `json:"recipient"`
	Instructions  string        `json:"instructions,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Lines         Cart          `json:"lines"`
	Totals        Totals        `json:"totals"`
	CreatedAt     time.Time     `json:"created_at"`
}

// CardDetails is the payment dialog form
type CardDetails struct {
	CardNumber     string `json:"card_number"`
	ExpiryMonth    string `json:"expiry_month"`
	ExpiryYear     string `json:"expiry_year"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholder_name"`
	BillingAddress string `json:"billing_address"`
}
