package supctl

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os/exec"
	"time"
)

// Daemon is the control interface for the external supervisord process.
// Operations receive it as an injected dependency so tests can substitute
// a recording fake.
type Daemon interface {
	// Launch starts the daemon using the given native config file
	Launch(ctx context.Context, configPath string) error
	// Terminate asks the daemon configured by the given file to shut down
	Terminate(ctx context.Context, configPath string) error
	// Probe reports whether a daemon control endpoint is live at addr.
	// It never returns an error; failure to connect means false.
	Probe(ctx context.Context, addr string) bool
}

// Supervisord drives a real supervisord instance by shelling out to the
// supervisord and supervisorctl binaries and probing the inet control
// endpoint over TCP.
type Supervisord struct {
	// SupervisordPath is the path to the supervisord binary
	SupervisordPath string

	// SupervisorctlPath is the path to the supervisorctl binary
	SupervisorctlPath string

	// DialTimeout is the timeout for a single liveness probe connection
	DialTimeout time.Duration
}

// SupervisordOption configures a Supervisord
type SupervisordOption func(*Supervisord)

// WithSupervisordPath sets the path to the supervisord binary
func WithSupervisordPath(path string) SupervisordOption {
	return func(d *Supervisord) {
		d.SupervisordPath = path
	}
}

// WithSupervisorctlPath sets the path to the supervisorctl binary
func WithSupervisorctlPath(path string) SupervisordOption {
	return func(d *Supervisord) {
		d.SupervisorctlPath = path
	}
}

// WithDialTimeout sets the timeout for liveness probe connections
func WithDialTimeout(d time.Duration) SupervisordOption {
	return func(s *Supervisord) {
		s.DialTimeout = d
	}
}

// NewSupervisord creates a Supervisord with default binary paths and
// applies any provided options
func NewSupervisord(opts ...SupervisordOption) *Supervisord {
	d := &Supervisord{
		SupervisordPath:   DefaultSupervisordPath,
		SupervisorctlPath: DefaultSupervisorctlPath,
		DialTimeout:       DefaultDialTimeout,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Launch starts supervisord with the given config file. The daemon
// daemonizes itself (nodaemon=false in the rendered config), so this
// returns once the launcher process exits; use Probe to confirm the
// control endpoint is up.
func (d *Supervisord) Launch(ctx context.Context, configPath string) error {
	if _, err := exec.LookPath(d.SupervisordPath); err != nil {
		return &OpError{Op: OpStart, Path: d.SupervisordPath, Err: fmt.Errorf("%w: %v", ErrDaemonUnavailable, err)}
	}

	cmd := exec.CommandContext(ctx, d.SupervisordPath, "-c", configPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return &OpError{Op: OpStart, Path: configPath, Err: commandError(out, err)}
	}
	return nil
}

// Terminate shuts the daemon down via supervisorctl shutdown
func (d *Supervisord) Terminate(ctx context.Context, configPath string) error {
	if _, err := exec.LookPath(d.SupervisorctlPath); err != nil {
		return &OpError{Op: OpStop, Path: d.SupervisorctlPath, Err: fmt.Errorf("%w: %v", ErrDaemonUnavailable, err)}
	}

	cmd := exec.CommandContext(ctx, d.SupervisorctlPath, "-c", configPath, "shutdown")
	if out, err := cmd.CombinedOutput(); err != nil {
		return &OpError{Op: OpStop, Path: configPath, Err: commandError(out, err)}
	}
	return nil
}

// Probe dials the control endpoint. Connection refused, timeout and every
// other failure all mean "not running".
func (d *Supervisord) Probe(ctx context.Context, addr string) bool {
	dialer := net.Dialer{Timeout: d.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// commandError folds captured command output into the error so failures
// carry the daemon's own diagnostics
func commandError(out []byte, err error) error {
	msg := bytes.TrimSpace(out)
	if len(msg) == 0 {
		return err
	}
	return fmt.Errorf("%w: %s", err, msg)
}
