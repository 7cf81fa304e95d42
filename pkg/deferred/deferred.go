// Package deferred delays and coalesces rapid updates. A Debounce delivers
// the last value once updates have been quiet for an interval; a Throttle
// delivers at most once per interval, always the newest value.
package deferred

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Policy int

const (
	Debounce Policy = iota
	Throttle
)

func (p Policy) String() string {
	switch p {
	case Debounce:
		return "debounce"
	case Throttle:
		return "throttle"
	default:
		return "unknown"
	}
}

// Deferred hands values to fn according to its policy. fn runs on a timer
// goroutine, never concurrently with itself, and never with a value that
// was superseded, cancelled or flushed.
type Deferred[T any] struct {
	policy   Policy
	interval time.Duration
	fn       func(T)
	limiter  *rate.Limiter

	mu      sync.Mutex
	deliver sync.Mutex // serialises fn
	gen     uint64
	pending bool
	value   T
	timer   *time.Timer
	stopped bool
}

func New[T any](policy Policy, interval time.Duration, fn func(T)) *Deferred[T] {
	d := &Deferred[T]{policy: policy, interval: interval, fn: fn}
	if policy == Throttle {
		d.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return d
}

// Update records v as the latest value and schedules its delivery.
func (d *Deferred[T]) Update(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.value = v

	switch d.policy {
	case Throttle:
		if d.pending {
			// A delivery is already scheduled; it will pick up v.
			return
		}
		d.pending = true
		d.gen++
		delay := d.limiter.Reserve().Delay()
		d.timer = time.AfterFunc(delay, d.fire(d.gen))
	default:
		d.pending = true
		d.gen++
		if d.timer != nil {
			d.timer.Stop()
		}
		d.timer = time.AfterFunc(d.interval, d.fire(d.gen))
	}
}

func (d *Deferred[T]) fire(gen uint64) func() {
	return func() {
		d.deliver.Lock()
		defer d.deliver.Unlock()

		d.mu.Lock()
		if gen != d.gen || !d.pending || d.stopped {
			d.mu.Unlock()
			return
		}
		v := d.value
		d.pending = false
		d.mu.Unlock()

		d.fn(v)
	}
}

// Flush delivers a pending value immediately on the calling goroutine.
// It reports whether anything was delivered.
func (d *Deferred[T]) Flush() bool {
	d.deliver.Lock()
	defer d.deliver.Unlock()

	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	v := d.value
	d.clearLocked()
	d.mu.Unlock()

	d.fn(v)
	return true
}

// Cancel drops a pending value without delivering it.
func (d *Deferred[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clearLocked()
}

// Stop cancels any pending value; later updates are ignored.
func (d *Deferred[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clearLocked()
	d.stopped = true
}

// Pending reports whether a value is waiting for delivery.
func (d *Deferred[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Deferred[T]) clearLocked() {
	d.gen++
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	var zero T
	d.value = zero
}
