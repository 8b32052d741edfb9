package supctl

import "time"

// Clock abstracts the time source for the wait loop so tests can simulate
// elapsed time without real delays
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// systemClock is the real time source
type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns the wall-clock Clock used by default
func SystemClock() Clock { return systemClock{} }

type waitConfig struct {
	unless   func() bool
	timeout  time.Duration
	interval time.Duration
	clock    Clock
}

// WaitOption configures a WaitFor call
type WaitOption func(*waitConfig)

// WithUnless sets a cancellation condition that aborts the wait early.
// It is evaluated after until on every poll; until wins when both are
// satisfied on the same check.
func WithUnless(f func() bool) WaitOption {
	return func(w *waitConfig) {
		w.unless = f
	}
}

// WithWaitTimeout sets the total time budget for the wait
func WithWaitTimeout(d time.Duration) WaitOption {
	return func(w *waitConfig) {
		w.timeout = d
	}
}

// WithInterval sets the sleep duration between polls. Interval and timeout
// are independent; an interval coarser than the timeout means fewer polls,
// not a longer wait.
func WithInterval(d time.Duration) WaitOption {
	return func(w *waitConfig) {
		w.interval = d
	}
}

// WithClock substitutes the time source
func WithClock(c Clock) WaitOption {
	return func(w *waitConfig) {
		w.clock = c
	}
}

// WaitFor blocks the calling goroutine until the until condition becomes
// true, the unless condition becomes true, or the timeout elapses. It polls
// at the configured interval; this is a coarse-grained primitive for
// process-startup convergence, not fine-grained synchronization.
//
// The condition is polled timeout/interval times: with a 2s timeout and 1s
// interval, until is evaluated exactly twice.
func WaitFor(until func() bool, opts ...WaitOption) bool {
	w := waitConfig{
		timeout:  DefaultTimeout,
		interval: DefaultPollInterval,
		clock:    systemClock{},
	}
	for _, opt := range opts {
		opt(&w)
	}
	if w.interval <= 0 {
		w.interval = DefaultPollInterval
	}

	deadline := w.clock.Now().Add(w.timeout)
	for w.clock.Now().Before(deadline) {
		if until() {
			return true
		}
		if w.unless != nil && w.unless() {
			return false
		}
		w.clock.Sleep(w.interval)
	}
	return false
}
