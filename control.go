package supctl

import (
	"context"
	"time"
)

// Control composes the idempotency predicates, the wait primitive and the
// daemon interface into the three lifecycle operations. Every operation
// accepts any input shape Load accepts, re-observes on-disk and daemon
// state fresh, and returns (true, nil) both on success and when the
// desired state already holds.
//
// Concurrent invocations from independent processes against the same paths
// are not coordinated; the Same check and the subsequent write are not
// atomic as a pair.
type Control struct {
	// Daemon is the injected supervisord control interface
	Daemon Daemon

	// Timeout is the convergence wait budget for Start and Stop
	Timeout time.Duration

	// Interval is the liveness poll interval during convergence waits
	Interval time.Duration

	// Clock is the time source for convergence waits
	Clock Clock
}

// Option configures a Control
type Option func(*Control)

// WithDaemon substitutes the daemon control interface
func WithDaemon(d Daemon) Option {
	return func(c *Control) {
		c.Daemon = d
	}
}

// WithTimeout sets the convergence wait timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Control) {
		c.Timeout = d
	}
}

// WithPollInterval sets the liveness poll interval
func WithPollInterval(d time.Duration) Option {
	return func(c *Control) {
		c.Interval = d
	}
}

// WithControlClock substitutes the time source used for convergence waits
func WithControlClock(clock Clock) Option {
	return func(c *Control) {
		c.Clock = clock
	}
}

// New creates a Control driving a real supervisord instance, with default
// timeouts, and applies any provided options
func New(opts ...Option) *Control {
	c := &Control{
		Daemon:   NewSupervisord(),
		Timeout:  DefaultTimeout,
		Interval: DefaultPollInterval,
		Clock:    systemClock{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Write renders the configuration to disk: the snapshot first, then the
// native config file. If a differing snapshot already exists the operation
// fails with ErrConflict and the on-disk content is left untouched.
// Calling Write again with the same configuration is a successful no-op
// that rewrites identical bytes.
func (c *Control) Write(ctx context.Context, input any) (bool, error) {
	cfg, err := Load(input)
	if err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if !Same(cfg) {
		return false, &OpError{Op: OpWrite, Path: cfg.SnapshotPath(), Err: ErrConflict}
	}

	if err := cfg.WriteSnapshot(); err != nil {
		return false, err
	}
	if err := cfg.WriteNative(); err != nil {
		return false, err
	}
	return true, nil
}

// Start launches the daemon for an already-written configuration and
// blocks until its control endpoint answers. The config must have been
// written first (ErrPrecondition otherwise; the daemon is never
// contacted). An already-running daemon makes Start a successful no-op.
// A launch that does not become observable within the timeout fails with
// ErrConvergence.
func (c *Control) Start(ctx context.Context, input any) (bool, error) {
	cfg, err := Load(input)
	if err != nil {
		return false, err
	}

	if !Exists(cfg) {
		return false, &OpError{Op: OpStart, Path: cfg.ConfigPath(), Err: ErrPrecondition}
	}

	if Running(ctx, c.Daemon, cfg) {
		return true, nil
	}

	if err := c.Daemon.Launch(ctx, cfg.ConfigPath()); err != nil {
		return false, err
	}

	ok := WaitFor(
		func() bool { return Running(ctx, c.Daemon, cfg) },
		WithUnless(func() bool { return ctx.Err() != nil }),
		WithWaitTimeout(c.Timeout),
		WithInterval(c.Interval),
		WithClock(c.Clock),
	)
	if !ok {
		return false, &OpError{Op: OpStart, Path: cfg.ControlAddr(), Err: ErrConvergence}
	}
	return true, nil
}

// Stop terminates a running daemon and blocks until its control endpoint
// stops answering. A daemon that is already down makes Stop a successful
// no-op without contacting it.
func (c *Control) Stop(ctx context.Context, input any) (bool, error) {
	cfg, err := Load(input)
	if err != nil {
		return false, err
	}

	if !Running(ctx, c.Daemon, cfg) {
		return true, nil
	}

	if err := c.Daemon.Terminate(ctx, cfg.ConfigPath()); err != nil {
		return false, err
	}

	ok := WaitFor(
		func() bool { return !Running(ctx, c.Daemon, cfg) },
		WithUnless(func() bool { return ctx.Err() != nil }),
		WithWaitTimeout(c.Timeout),
		WithInterval(c.Interval),
		WithClock(c.Clock),
	)
	if !ok {
		return false, &OpError{Op: OpStop, Path: cfg.ControlAddr(), Err: ErrConvergence}
	}
	return true, nil
}
