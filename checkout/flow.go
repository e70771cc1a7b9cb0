package checkout

import (
	"errors"
	"sync"

	"foodie-storefront/models"
	"foodie-storefront/statemachine"
)

var (
	ErrNoCheckout        = errors.New("no checkout in progress")
	ErrPaymentInProgress = errors.New("payment already in progress")
	ErrOrderPlaced       = errors.New("order already placed")
)

// Flow tracks one session's position in details → payment → confirmation
type Flow struct {
	mu         sync.Mutex
	stage      statemachine.Stage
	details    *models.CheckoutDetails
	receipt    *Receipt
	processing bool
	attempt    int
	orderID    string
}

func NewFlow() *Flow {
	return &Flow{stage: statemachine.StageBrowsing}
}

// State is a read-only view of a Flow
type State struct {
	Stage   statemachine.Stage      `json:"stage"`
	Details *models.CheckoutDetails `json:"details,omitempty"`
	Receipt *Receipt                `json:"receipt,omitempty"`
	OrderID string                  `json:"order_id,omitempty"`
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{Stage: f.stage, Details: f.details, Receipt: f.receipt, OrderID: f.orderID}
}

func (f *Flow) Stage() statemachine.Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

// Details returns the snapshot captured by Submit
func (f *Flow) Details() (models.CheckoutDetails, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.details == nil {
		return models.CheckoutDetails{}, false
	}
	return *f.details, true
}

// Open shows the details form. Reopening it while already there is a no-op.
func (f *Flow) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage == statemachine.StageDetails {
		return nil
	}
	return f.move(statemachine.StageDetails, statemachine.ActorCustomer)
}

// Submit stores the snapshot and moves to payment (card) or straight to
// confirmation (cash).
func (f *Flow) Submit(details models.CheckoutDetails) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := statemachine.StageConfirmation
	if details.PaymentMethod == models.PaymentCard {
		next = statemachine.StagePayment
	}
	if err := f.move(next, statemachine.ActorCustomer); err != nil {
		return err
	}
	f.details = &details
	return nil
}

// BeginPayment marks a payment as in flight and returns the snapshot to
// charge together with the attempt number FinishPayment expects.
func (f *Flow) BeginPayment() (models.CheckoutDetails, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage != statemachine.StagePayment || f.details == nil {
		return models.CheckoutDetails{}, 0, ErrNoCheckout
	}
	if f.processing {
		return models.CheckoutDetails{}, 0, ErrPaymentInProgress
	}
	f.processing = true
	f.attempt++
	return *f.details, f.attempt, nil
}

// AbortPayment releases an attempt that never reached the processor
func (f *Flow) AbortPayment(attempt int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.processing && f.attempt == attempt {
		f.processing = false
	}
}

// FinishPayment records the outcome of a payment attempt. A result arriving
// after the dialog was closed is discarded.
func (f *Flow) FinishPayment(attempt int, receipt Receipt, err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.processing || f.attempt != attempt {
		return ErrNoCheckout
	}
	f.processing = false
	if err != nil {
		return err
	}
	if err := f.move(statemachine.StageConfirmation, statemachine.ActorSystem); err != nil {
		return err
	}
	f.receipt = &receipt
	return nil
}

// Place runs place with the confirmed snapshot and attaches the resulting
// order id. The flow stays locked while place runs, so an order is placed at
// most once per checkout.
func (f *Flow) Place(place func(models.CheckoutDetails) (string, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage != statemachine.StageConfirmation || f.details == nil {
		return ErrNoCheckout
	}
	if f.orderID != "" {
		return ErrOrderPlaced
	}
	id, err := place(*f.details)
	if err != nil {
		return err
	}
	f.orderID = id
	return nil
}

// Cancel closes whichever dialog is open; with none open it is a no-op. Once
// an order is placed it can no longer be cancelled from here.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage == statemachine.StageBrowsing {
		return nil
	}
	if f.orderID != "" {
		return ErrOrderPlaced
	}
	if err := f.move(statemachine.StageBrowsing, statemachine.ActorCustomer); err != nil {
		return err
	}
	f.reset()
	return nil
}

// Complete ends the checkout when order tracking finishes
func (f *Flow) Complete(orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.orderID != orderID {
		return ErrNoCheckout
	}
	if err := f.move(statemachine.StageBrowsing, statemachine.ActorSystem); err != nil {
		return err
	}
	f.reset()
	return nil
}

func (f *Flow) move(to statemachine.Stage, actor statemachine.Actor) error {
	if err := statemachine.Checkout.CanTransition(f.stage, to, actor); err != nil {
		return err
	}
	f.stage = to
	return nil
}

func (f *Flow) reset() {
	f.details = nil
	f.receipt = nil
	f.processing = false
	f.orderID = ""
}
