// Package debounce coalesces bursts of events into a single delayed call.
package debounce

import (
	"sync"
	"time"
)

// Debouncer schedules a call after a quiet period. Each new Debounce replaces
// the pending call; a call that has already started is never interrupted.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
	seq      uint64
}

// New creates a debouncer with the given quiet period
func New(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
	}
}

// Duration returns the quiet period
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}

// Debounce cancels any pending call and schedules fn after the quiet period.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		// A newer Debounce or Cancel raced the timer; this call is stale.
		if d.seq != seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel discards the pending call, if any
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Immediate cancels the pending call and runs fn on the caller's goroutine
func (d *Debouncer) Immediate(fn func()) {
	d.Cancel()
	fn()
}

// Pending reports whether a call is scheduled and has not fired yet
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
