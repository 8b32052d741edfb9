package supctl

import (
	"sync"
	"testing"
	"time"
)

// fakeClock advances its notion of now by the full sleep duration,
// letting wait loops run without real delays
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
}

func (c *fakeClock) sleepCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sleeps)
}

func TestWaitForImmediate(t *testing.T) {
	clk := newFakeClock()

	ok := WaitFor(func() bool { return true },
		WithClock(clk),
		WithWaitTimeout(5*time.Second),
		WithInterval(time.Second),
	)
	if !ok {
		t.Fatal("expected true for already-satisfied condition")
	}
	if clk.sleepCount() != 0 {
		t.Errorf("slept %d times, want 0", clk.sleepCount())
	}
}

func TestWaitForUntilWinsOverUnless(t *testing.T) {
	clk := newFakeClock()

	ok := WaitFor(func() bool { return true },
		WithUnless(func() bool { return true }),
		WithClock(clk),
		WithWaitTimeout(5*time.Second),
	)
	if !ok {
		t.Fatal("until must win when both conditions hold on the same check")
	}
}

func TestWaitForUnlessCancels(t *testing.T) {
	clk := newFakeClock()

	ok := WaitFor(func() bool { return false },
		WithUnless(func() bool { return true }),
		WithClock(clk),
		WithWaitTimeout(5*time.Second),
	)
	if ok {
		t.Fatal("expected false when unless holds")
	}
	if clk.sleepCount() != 0 {
		t.Errorf("slept %d times, want 0", clk.sleepCount())
	}
}

func TestWaitForTimeoutPollCount(t *testing.T) {
	clk := newFakeClock()
	polls := 0

	ok := WaitFor(
		func() bool {
			polls++
			return false
		},
		WithClock(clk),
		WithWaitTimeout(2*time.Second),
		WithInterval(time.Second),
	)
	if ok {
		t.Fatal("expected false on timeout")
	}
	if polls != 2 {
		t.Errorf("polls = %d, want 2", polls)
	}
}

func TestWaitForIntervalCoarserThanTimeout(t *testing.T) {
	clk := newFakeClock()
	polls := 0

	ok := WaitFor(
		func() bool {
			polls++
			return false
		},
		WithClock(clk),
		WithWaitTimeout(2*time.Second),
		WithInterval(5*time.Second),
	)
	if ok {
		t.Fatal("expected false on timeout")
	}
	// interval and timeout are independent: a coarse interval reduces the
	// poll count, it does not extend the wait
	if polls != 1 {
		t.Errorf("polls = %d, want 1", polls)
	}
}

func TestWaitForEventualSuccess(t *testing.T) {
	clk := newFakeClock()
	polls := 0

	ok := WaitFor(
		func() bool {
			polls++
			return polls >= 3
		},
		WithClock(clk),
		WithWaitTimeout(10*time.Second),
		WithInterval(time.Second),
	)
	if !ok {
		t.Fatal("expected true once the condition became satisfied")
	}
	if polls != 3 {
		t.Errorf("polls = %d, want 3", polls)
	}
	if clk.sleepCount() != 2 {
		t.Errorf("slept %d times, want 2", clk.sleepCount())
	}
}
