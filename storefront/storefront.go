// Package storefront sequences the ordering flow: catalog browse → cart →
// checkout details → payment → order confirmation. It owns no global state;
// main builds one Storefront at startup and closes it on shutdown.
package storefront

import (
	"context"
	"errors"
	"sync"
	"time"

	"foodie-storefront/cart"
	"foodie-storefront/catalog"
	"foodie-storefront/checkout"
	"foodie-storefront/models"
	"foodie-storefront/orders"
	"foodie-storefront/session"
	"foodie-storefront/statemachine"
	"foodie-storefront/timed"
)

var (
	ErrNotSignedIn  = errors.New("sign in to continue")
	ErrUnknownItem  = errors.New("menu item not found")
	ErrForeignOrder = errors.New("this order does not belong to you")
)

type Storefront struct {
	catalog  *catalog.Catalog
	carts    *cart.Carts
	sessions *session.Store
	payments *checkout.Payments
	tracker  *orders.Tracker
	opts     checkout.Options
	now      func() time.Time

	mu    sync.Mutex
	flows map[string]*checkout.Flow
}

func New(
	cat *catalog.Catalog,
	carts *cart.Carts,
	sessions *session.Store,
	payments *checkout.Payments,
	tracker *orders.Tracker,
	opts checkout.Options,
) *Storefront {
	return &Storefront{
		catalog:  cat,
		carts:    carts,
		sessions: sessions,
		payments: payments,
		tracker:  tracker,
		opts:     opts,
		now:      time.Now,
		flows:    make(map[string]*checkout.Flow),
	}
}

// Close stops background order simulations
func (s *Storefront) Close() {
	s.tracker.Close()
}

// ── Catalog ─────────────────────────────────────────────────────────────────

func (s *Storefront) Categories() []models.Category {
	return s.catalog.Categories()
}

// Menu lists a category filtered by an optional search query
func (s *Storefront) Menu(category, query string) []models.FoodItem {
	return s.catalog.Search(category, query)
}

// ── Session ─────────────────────────────────────────────────────────────────

// Login waits for the simulated sign-in. ok is false on a validation failure.
func (s *Storefront) Login(ctx context.Context, email, password string) (models.User, bool, error) {
	previous, hadSession := s.sessions.Current()
	return s.awaitSession(ctx, previous, hadSession, s.sessions.Login(ctx, email, password))
}

func (s *Storefront) Signup(ctx context.Context, name, email, password string) (models.User, bool, error) {
	previous, hadSession := s.sessions.Current()
	return s.awaitSession(ctx, previous, hadSession, s.sessions.Signup(ctx, name, email, password))
}

// awaitSession waits for a sign-in. A different user replacing the session
// loses the previous user's cart and checkout, as on logout. previous must be
// read before the task starts.
func (s *Storefront) awaitSession(ctx context.Context, previous models.User, hadSession bool, task *timed.Task[bool]) (models.User, bool, error) {
	ok, err := task.Wait(ctx)
	if err != nil || !ok {
		return models.User{}, false, err
	}
	user, present := s.sessions.Current()
	if hadSession && present && previous.ID != user.ID {
		s.forget(previous.ID)
	}
	return user, present, nil
}

func (s *Storefront) CurrentUser() (models.User, bool) {
	return s.sessions.Current()
}

func (s *Storefront) UpdateProfile(ctx context.Context, update session.ProfileUpdate) (models.User, error) {
	return s.sessions.UpdateProfile(ctx, update)
}

// Logout ends the session and discards the user's cart and checkout
func (s *Storefront) Logout(ctx context.Context) error {
	if user, ok := s.sessions.Current(); ok {
		s.forget(user.ID)
	}
	return s.sessions.Logout(ctx)
}

func (s *Storefront) forget(userID string) {
	s.carts.Drop(userID)
	s.mu.Lock()
	delete(s.flows, userID)
	s.mu.Unlock()
}

// ── Cart ────────────────────────────────────────────────────────────────────

// CartView is the cart drawer: lines plus totals recomputed on read
type CartView struct {
	Items      models.Cart       `json:"items"`
	TotalItems int               `json:"total_items"`
	Totals     models.Totals     `json:"-"`
	Display    models.TotalsView `json:"totals"`
}

func (s *Storefront) Cart(userID string) CartView {
	h := s.carts.For(userID)
	items := h.Items()
	totals := s.carts.Pricing().Totals(items)
	return CartView{
		Items:      items,
		TotalItems: cart.TotalItemCount(items),
		Totals:     totals,
		Display:    totals.Display(),
	}
}

func (s *Storefront) AddToCart(userID, itemID string) (CartView, error) {
	item, ok := s.catalog.Lookup(itemID)
	if !ok {
		return CartView{}, ErrUnknownItem
	}
	s.carts.For(userID).AddItem(item)
	return s.Cart(userID), nil
}

func (s *Storefront) UpdateQuantity(userID, itemID string, quantity int) CartView {
	s.carts.For(userID).UpdateQuantity(itemID, quantity)
	return s.Cart(userID)
}

func (s *Storefront) RemoveFromCart(userID, itemID string) CartView {
	s.carts.For(userID).RemoveItem(itemID)
	return s.Cart(userID)
}

func (s *Storefront) ClearCart(userID string) CartView {
	s.carts.For(userID).ClearCart()
	return s.Cart(userID)
}

// ── Checkout ────────────────────────────────────────────────────────────────

func (s *Storefront) flow(userID string) *checkout.Flow {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[userID]
	if !ok {
		f = checkout.NewFlow()
		s.flows[userID] = f
	}
	return f
}

func (s *Storefront) CheckoutState(userID string) checkout.State {
	return s.flow(userID).State()
}

// BeginCheckout opens the details stage; it needs a session and a non-empty cart
func (s *Storefront) BeginCheckout(userID string) error {
	if !s.sessions.Present() {
		return ErrNotSignedIn
	}
	if len(s.carts.For(userID).Items()) == 0 {
		return checkout.ErrEmptyCart
	}
	return s.flow(userID).Open()
}

// SubmitDetails snapshots the cart with the delivery and payment choices
func (s *Storefront) SubmitDetails(userID string, req checkout.Request) (models.CheckoutDetails, error) {
	f := s.flow(userID)
	if f.Stage() != statemachine.StageDetails {
		if err := s.BeginCheckout(userID); err != nil {
			return models.CheckoutDetails{}, err
		}
	}
	details, err := checkout.Snapshot(s.carts.For(userID).Items(), req, s.opts, s.now())
	if err != nil {
		return models.CheckoutDetails{}, err
	}
	if err := f.Submit(details); err != nil {
		return models.CheckoutDetails{}, err
	}
	return details, nil
}

type paymentResult struct {
	receipt checkout.Receipt
	err     error
}

// Pay charges the snapshot total. The flow records the outcome even if ctx
// ends first; the caller just stops waiting.
func (s *Storefront) Pay(ctx context.Context, userID string, card models.CardDetails) (checkout.Receipt, error) {
	f := s.flow(userID)
	details, attempt, err := f.BeginPayment()
	if err != nil {
		return checkout.Receipt{}, err
	}
	task, err := s.payments.Process(ctx, details, card)
	if err != nil {
		f.AbortPayment(attempt)
		return checkout.Receipt{}, err
	}

	done := make(chan paymentResult, 1)
	task.Then(func(receipt checkout.Receipt, err error) {
		done <- paymentResult{receipt, f.FinishPayment(attempt, receipt, err)}
	})

	select {
	case res := <-done:
		return res.receipt, res.err
	case <-ctx.Done():
		return checkout.Receipt{}, ctx.Err()
	}
}

// PlaceOrder turns the confirmed snapshot into a tracked order. When tracking
// completes the cart is cleared and the flow returns to browsing.
func (s *Storefront) PlaceOrder(ctx context.Context, userID string) (*models.Order, error) {
	f := s.flow(userID)
	holder := s.carts.For(userID)

	var order *models.Order
	err := f.Place(func(details models.CheckoutDetails) (string, error) {
		placed, err := s.tracker.Place(ctx, userID, details, func(done models.Order) {
			holder.ClearCart()
			_ = f.Complete(done.ID)
		})
		if err != nil {
			return "", err
		}
		order = placed
		return placed.ID, nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CancelCheckout closes the open checkout dialog and discards its snapshot
func (s *Storefront) CancelCheckout(userID string) error {
	return s.flow(userID).Cancel()
}

// ── Orders ──────────────────────────────────────────────────────────────────

func (s *Storefront) Order(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.tracker.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForeignOrder
	}
	return order, nil
}

func (s *Storefront) OrderHistory(ctx context.Context, userID string) ([]models.Order, error) {
	return s.tracker.History(ctx, userID)
}
