package statemachine

// Stage is a screen of the checkout sequence
type Stage string

const (
	StageBrowsing     Stage = "browsing"
	StageDetails      Stage = "details"
	StagePayment      Stage = "payment"
	StageConfirmation Stage = "confirmation"
)

// Checkout gates each stage on completion of the previous one
var Checkout = newMachine("checkout", []Transition[Stage]{
	{From: StageBrowsing, To: StageDetails, Actor: ActorCustomer},
	// card payments go through the payment dialog
	{From: StageDetails, To: StagePayment, Actor: ActorCustomer},
	{From: StagePayment, To: StageConfirmation, Actor: ActorSystem},
	// cash skips it
	{From: StageDetails, To: StageConfirmation, Actor: ActorCustomer},
	// closing a dialog discards the attempt
	{From: StageDetails, To: StageBrowsing, Actor: ActorCustomer},
	{From: StagePayment, To: StageBrowsing, Actor: ActorCustomer},
	{From: StageConfirmation, To: StageBrowsing, Actor: ActorCustomer},
	// order tracking finished
	{From: StageConfirmation, To: StageBrowsing, Actor: ActorSystem},
})
