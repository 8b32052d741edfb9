package supctl

import (
	"errors"
	"fmt"
)

// Common errors returned by lifecycle operations
var (
	// ErrUnsupportedInput indicates the loader received a value of a kind it
	// does not accept. This is a programmer error; callers should not retry.
	ErrUnsupportedInput = errors.New("supctl: unsupported input")

	// ErrConflict indicates a differing configuration snapshot already
	// exists on disk. Write never overwrites it silently.
	ErrConflict = errors.New("supctl: conflicting configuration on disk")

	// ErrPrecondition indicates an operation was invoked before its
	// required predecessor state existed (e.g. start before write)
	ErrPrecondition = errors.New("supctl: precondition failed")

	// ErrConvergence indicates a side effect was attempted but the daemon
	// did not reach the requested state within the wait timeout
	ErrConvergence = errors.New("supctl: daemon did not converge before timeout")

	// ErrDaemonUnavailable indicates the supervisord binaries or control
	// endpoint are absent or unreachable
	ErrDaemonUnavailable = errors.New("supctl: supervisord unavailable")
)

// Op identifies the lifecycle operation an error originated from
type Op int

const (
	// OpUnknown represents an unknown operation
	OpUnknown Op = iota
	// OpLoad is configuration loading/normalization
	OpLoad
	// OpWrite is rendering and writing config files
	OpWrite
	// OpStart is launching the daemon
	OpStart
	// OpStop is terminating the daemon
	OpStop
	// OpWatch is watching config files for out-of-band changes
	OpWatch
)

// String returns the lowercase name of the operation
func (o Op) String() string {
	switch o {
	case OpLoad:
		return "load"
	case OpWrite:
		return "write"
	case OpStart:
		return "start"
	case OpStop:
		return "stop"
	case OpWatch:
		return "watch"
	default:
		return "unknown"
	}
}

// OpError represents an error from a lifecycle operation
type OpError struct {
	// Op is the operation that failed
	Op Op
	// Path is the file path or endpoint involved in the operation
	Path string
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *OpError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("supctl %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("supctl %s %q: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *OpError) Unwrap() error {
	return e.Err
}
