package statemachine

import (
	"fmt"
	"strings"
)

// Actor names who may trigger a transition
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorSystem   Actor = "system" // timers of the simulated backend
)

// Transition defines a valid state change and who can perform it
type Transition[S ~string] struct {
	From  S     `json:"from"`
	To    S     `json:"to"`
	Actor Actor `json:"actor"`
}

// transitionKey is used to look up valid transitions quickly
type transitionKey[S ~string] struct {
	From  S
	To    S
	Actor Actor
}

// Machine is an immutable transition table
type Machine[S ~string] struct {
	name        string
	transitions []Transition[S]
	lookup      map[transitionKey[S]]bool
}

func newMachine[S ~string](name string, transitions []Transition[S]) *Machine[S] {
	m := &Machine[S]{
		name:        name,
		transitions: transitions,
		lookup:      make(map[transitionKey[S]]bool, len(transitions)),
	}
	for _, t := range transitions {
		m.lookup[transitionKey[S]{t.From, t.To, t.Actor}] = true
	}
	return m
}

// ValidTransitionsFrom returns all valid next states from a given state
func (m *Machine[S]) ValidTransitionsFrom(state S) []S {
	var nexts []S
	seen := map[S]bool{}
	for _, t := range m.transitions {
		if t.From == state && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func (m *Machine[S]) CanTransition(from, to S, actor Actor) error {
	if m.lookup[transitionKey[S]{from, to, actor}] {
		return nil
	}
	return fmt.Errorf("%w: %s %s → %s is not allowed for actor '%s'. Valid transitions from %s are: %s",
		ErrInvalidTransition, m.name, from, to, actor, from, m.describeValidFrom(from))
}

func (m *Machine[S]) describeValidFrom(state S) string {
	nexts := m.ValidTransitionsFrom(state)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	parts := make([]string, len(nexts))
	for i, s := range nexts {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// Transitions returns the full table for documentation
func (m *Machine[S]) Transitions() []Transition[S] {
	out := make([]Transition[S], len(m.transitions))
	copy(out, m.transitions)
	return out
}
