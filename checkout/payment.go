package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"foodie-storefront/models"
	"foodie-storefront/timed"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidCard = errors.New("invalid card details")

// Receipt is what a successful simulated payment hands to the confirmation stage
type Receipt struct {
	Reference string          `json:"reference"`
	Last4     string          `json:"last4"`
	Card      string          `json:"card"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paid_at"`
}

type normalizedCard struct {
	Number string `validate:"required,numeric,min=13,max=19"`
	Month  string `validate:"required,numeric,len=2"`
	Year   string `validate:"required,numeric,len=4"`
	CVV    string `validate:"required,numeric,min=3,max=4"`
	Name   string `validate:"required"`
}

// Payments simulates a card processor with a fixed latency
type Payments struct {
	delay time.Duration
	now   func() time.Time
}

func NewPayments(delay time.Duration) *Payments {
	return &Payments{delay: delay, now: time.Now}
}

// Process validates the card synchronously and then charges the snapshot
// total after the processing delay. Card data is never stored.
func (p *Payments) Process(ctx context.Context, details models.CheckoutDetails, card models.CardDetails) (*timed.Task[Receipt], error) {
	norm, err := p.validateCard(card)
	if err != nil {
		return nil, err
	}
	amount := details.Totals.Total
	return timed.After(p.delay, func() (Receipt, error) {
		return Receipt{
			Reference: uuid.NewString(),
			Last4:     norm.Number[len(norm.Number)-4:],
			Card:      maskCardNumber(groupDigits(norm.Number)),
			Amount:    amount,
			PaidAt:    p.now(),
		}, nil
	}), nil
}

func (p *Payments) validateCard(card models.CardDetails) (normalizedCard, error) {
	norm := normalizedCard{
		Number: digitsOnly(card.CardNumber),
		Month:  strings.TrimSpace(card.ExpiryMonth),
		Year:   strings.TrimSpace(card.ExpiryYear),
		CVV:    strings.TrimSpace(card.CVV),
		Name:   strings.TrimSpace(card.CardholderName),
	}
	if len(norm.Month) == 1 {
		norm.Month = "0" + norm.Month
	}
	if err := validate.Struct(norm); err != nil {
		return norm, fmt.Errorf("%w: %v", ErrInvalidCard, err)
	}
	month, _ := strconv.Atoi(norm.Month)
	year, _ := strconv.Atoi(norm.Year)
	if month < 1 || month > 12 {
		return norm, fmt.Errorf("%w: expiry month %s", ErrInvalidCard, norm.Month)
	}
	now := p.now()
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return norm, fmt.Errorf("%w: card expired", ErrInvalidCard)
	}
	return norm, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber keeps the first 16 digits and groups them by four
func FormatCardNumber(value string) string {
	digits := digitsOnly(value)
	if len(digits) < 4 {
		return digits
	}
	if len(digits) > 16 {
		digits = digits[:16]
	}
	return groupDigits(digits)
}

func groupDigits(digits string) string {
	groups := make([]string, 0, len(digits)/4+1)
	for i := 0; i < len(digits); i += 4 {
		end := min(i+4, len(digits))
		groups = append(groups, digits[i:end])
	}
	return strings.Join(groups, " ")
}

// maskCardNumber hides every digit but the last four
func maskCardNumber(formatted string) string {
	out := []byte(formatted)
	seen := 0
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] == ' ' {
			continue
		}
		seen++
		if seen > 4 {
			out[i] = '*'
		}
	}
	return string(out)
}
