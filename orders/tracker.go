// Package orders places orders from checkout snapshots and simulates their
// progress through the kitchen.
package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"foodie-storefront/models"
	"foodie-storefront/statemachine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

// Delays drive the simulated order progress
type Delays struct {
	Confirm time.Duration `yaml:"confirm"` // confirmed → preparing
	Tick    time.Duration `yaml:"tick"`    // between progress steps
	Step    int           `yaml:"step"`    // progress added per tick
	Finish  time.Duration `yaml:"finish"`  // after progress reaches 100
}

// DefaultDelays: 2s confirmation, +10 every 500ms, 1s to finish
func DefaultDelays() Delays {
	return Delays{Confirm: 2 * time.Second, Tick: 500 * time.Millisecond, Step: 10, Finish: time.Second}
}

// Tracker owns the order table and the background progress simulations
type Tracker struct {
	db     *gorm.DB
	delays Delays
	now    func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewTracker(db *gorm.DB, delays Delays) *Tracker {
	if delays.Step <= 0 {
		delays.Step = 10
	}
	return &Tracker{db: db, delays: delays, now: time.Now, stop: make(chan struct{})}
}

// Place stores the order in the confirmed state and starts its simulation.
// onComplete runs once, on the simulation goroutine, when the order completes.
func (t *Tracker) Place(ctx context.Context, userID string, details models.CheckoutDetails, onComplete func(models.Order)) (*models.Order, error) {
	if err := statemachine.Orders.CanTransition(models.StatusOrdering, models.StatusConfirmed, statemachine.ActorCustomer); err != nil {
		return nil, err
	}
	if len(details.Lines) == 0 {
		return nil, errors.New("order has no items")
	}

	order := models.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Status:        models.StatusConfirmed,
		DeliveryMode:  details.DeliveryMode,
		PaymentMethod: details.PaymentMethod,
		RecipientName: details.Recipient.Name,
		Phone:         details.Recipient.Phone,
		Address:       details.Recipient.Address,
		Instructions:  details.Instructions,
		Subtotal:      details.Totals.Subtotal,
		DeliveryFee:   details.Totals.DeliveryFee,
		Tax:           details.Totals.Tax,
		Total:         details.Totals.Total,
	}
	for _, line := range details.Lines {
		order.Items = append(order.Items, models.OrderItem{
			FoodItemID: line.ID,
			Name:       line.Name,
			UnitPrice:  line.Price,
			Quantity:   line.Quantity,
		})
	}

	if err := t.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	t.wg.Add(1)
	go t.simulate(order.ID, onComplete)
	return &order, nil
}

// Get returns an order with its items
func (t *Tracker) Get(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := t.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &order, nil
}

// History lists a user's orders, newest first
func (t *Tracker) History(ctx context.Context, userID string) ([]models.Order, error) {
	var list []models.Order
	err := t.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("order history: %w", err)
	}
	return list, nil
}

// Close stops running simulations and waits for them to exit
func (t *Tracker) Close() {
	t.stopOnce.Do(func() { close(t.stop) })
	t.wg.Wait()
}

func (t *Tracker) simulate(id string, onComplete func(models.Order)) {
	defer t.wg.Done()

	if !t.sleep(t.delays.Confirm) {
		return
	}
	if err := t.advance(id, models.StatusConfirmed, models.StatusPreparing, 0); err != nil {
		log.Printf("order %s: %v", id, err)
		return
	}

	for progress := 0; progress < 100; {
		if !t.sleep(t.delays.Tick) {
			return
		}
		progress = min(progress+t.delays.Step, 100)
		if err := t.setProgress(id, progress); err != nil {
			log.Printf("order %s: %v", id, err)
			return
		}
	}

	if !t.sleep(t.delays.Finish) {
		return
	}
	if err := t.advance(id, models.StatusPreparing, models.StatusCompleted, 100); err != nil {
		log.Printf("order %s: %v", id, err)
		return
	}

	order, err := t.Get(context.Background(), id)
	if err != nil {
		log.Printf("order %s: %v", id, err)
		return
	}
	if onComplete != nil {
		onComplete(*order)
	}
}

func (t *Tracker) advance(id string, from, to models.OrderStatus, progress int) error {
	if err := statemachine.Orders.CanTransition(from, to, statemachine.ActorSystem); err != nil {
		return err
	}
	updates := map[string]any{"status": to, "progress": progress}
	if to == models.StatusCompleted {
		updates["completed_at"] = t.now()
	}
	res := t.db.Model(&models.Order{}).Where("id = ? AND status = ?", id, from).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("advance to %s: %w", to, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (t *Tracker) setProgress(id string, progress int) error {
	err := t.db.Model(&models.Order{}).Where("id = ?", id).Update("progress", progress).Error
	if err != nil {
		return fmt.Errorf("progress: %w", err)
	}
	return nil
}

// sleep reports false when the tracker is closing
func (t *Tracker) sleep(d time.Duration) bool {
	if d <= 0 {
		select {
		case <-t.stop:
			return false
		default:
			return true
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-t.stop:
		return false
	}
}

// ProgressMessage is the status line shown while tracking an order
func ProgressMessage(status models.OrderStatus, progress int) string {
	switch status {
	case models.StatusConfirmed:
		return "Order confirmed! Estimated delivery: 25-30 minutes"
	case models.StatusCompleted:
		return "Order complete"
	case models.StatusPreparing:
		switch {
		case progress < 50:
			return "Preparing ingredients..."
		case progress < 80:
			return "Cooking your food..."
		default:
			return "Almost ready for delivery!"
		}
	}
	return ""
}
