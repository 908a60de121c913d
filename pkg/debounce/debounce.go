// Package debounce coalesces bursts of values into single trailing-edge
// emissions, used to turn rapid search-box keystrokes into one query.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period applied when none is configured.
const DefaultDelay = 300 * time.Millisecond

// Debouncer emits the last value observed once no newer value arrives
// within the configured delay. Every push re-arms the timer, so a steady
// stream of values delays emission indefinitely (debounce, not throttle).
type Debouncer[T any] struct {
	delay time.Duration
	out   chan T

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a debouncer with the given quiet period. Non-positive delays
// fall back to DefaultDelay.
func New[T any](delay time.Duration) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{
		delay: delay,
		out:   make(chan T, 1),
	}
}

// Push observes a new value and re-arms the quiet-period timer. Values
// superseded before the timer fires are never emitted.
func (d *Debouncer[T]) Push(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		// Replace an unconsumed older emission so the consumer always
		// receives the newest value.
		select {
		case <-d.out:
		default:
		}
		d.out <- value
	})
}

// C delivers debounced values. The channel holds at most one pending value.
func (d *Debouncer[T]) C() <-chan T {
	return d.out
}

// Stop cancels any pending emission. Values pushed afterwards re-arm the
// debouncer as usual.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
