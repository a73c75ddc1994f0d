package engine

import "time"

// Debouncer coalesces bursts of requests into one action fired after a quiet period
// Tick-polled: Trigger reschedules, Poll fires at most once per schedule; no timers or goroutines
type Debouncer struct {
	delay    time.Duration
	deadline time.Time
	pending  bool
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger cancels any pending schedule and reschedules at now+delay
func (d *Debouncer) Trigger(now time.Time) {
	d.deadline = now.Add(d.delay)
	d.pending = true
}

// Poll reports whether the scheduled action is due, clearing it when it is
func (d *Debouncer) Poll(now time.Time) bool {
	if !d.pending || now.Before(d.deadline) {
		return false
	}
	d.pending = false
	return true
}

// Cancel drops the pending schedule
func (d *Debouncer) Cancel() {
	d.pending = false
}

func (d *Debouncer) Pending() bool {
	return d.pending
}

// Deadline returns when the pending action fires, zero when idle
func (d *Debouncer) Deadline() time.Time {
	if !d.pending {
		return time.Time{}
	}
	return d.deadline
}
