package statemachine

import (
	"errors"

	"foodie-storefront/models"
)

var ErrInvalidTransition = errors.New("invalid transition")

// Orders is the simulated order lifecycle:
// ordering → confirmed → preparing → completed
var Orders = newMachine("order", []Transition[models.OrderStatus]{
	// Customer presses "Place order" in the confirmation dialog
	{From: models.StatusOrdering, To: models.StatusConfirmed, Actor: ActorCustomer},
	// Kitchen starts after the confirmation delay
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: ActorSystem},
	// Progress reached 100
	{From: models.StatusPreparing, To: models.StatusCompleted, Actor: ActorSystem},
})
