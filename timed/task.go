// Package timed runs simulated backend work after a fixed delay.
//
// A Task has exactly one completion. Waiting with a cancelled context stops the
// waiter only; the task still runs to completion and its result is kept, so a
// closed dialog simply discards what it was waiting for.
package timed

import (
	"context"
	"sync"
	"time"
)

// Task is the future of a delayed computation
type Task[T any] struct {
	done  chan struct{}
	value T
	err   error

	mu        sync.Mutex
	callbacks []func(T, error)
}

// After schedules fn to run once delay has elapsed
func After[T any](delay time.Duration, fn func() (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		if delay > 0 {
			timer := time.NewTimer(delay)
			<-timer.C
		}
		value, err := fn()
		t.complete(value, err)
	}()
	return t
}

// Completed returns an already finished task
func Completed[T any](value T, err error) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	t.complete(value, err)
	return t
}

func (t *Task[T]) complete(value T, err error) {
	t.mu.Lock()
	t.value, t.err = value, err
	callbacks := t.callbacks
	t.callbacks = nil
	close(t.done)
	t.mu.Unlock()

	for _, cb := range callbacks {
		cb(value, err)
	}
}

// Done is closed once the task has finished
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes or ctx ends
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then registers the completion callback. If the task already finished the
// callback runs immediately on the caller's goroutine.
func (t *Task[T]) Then(cb func(T, error)) {
	t.mu.Lock()
	select {
	case <-t.done:
		t.mu.Unlock()
		cb(t.value, t.err)
		return
	default:
	}
	t.callbacks = append(t.callbacks, cb)
	t.mu.Unlock()
}
