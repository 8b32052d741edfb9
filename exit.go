package supctl

import "errors"

// Process exit codes for command-line use. Each distinguished failure kind
// maps to its own code so automation can branch on the outcome without
// parsing output.
const (
	// ExitOK is returned when the operation succeeded or the desired state
	// already held
	ExitOK = 0
	// ExitFailure covers unclassified errors
	ExitFailure = 1
	// ExitConflict maps ErrConflict
	ExitConflict = 2
	// ExitPrecondition maps ErrPrecondition
	ExitPrecondition = 3
	// ExitConvergence maps ErrConvergence
	ExitConvergence = 4
	// ExitDaemonUnavailable maps ErrDaemonUnavailable
	ExitDaemonUnavailable = 5
	// ExitUsage maps ErrUnsupportedInput
	ExitUsage = 6
)

// ExitCode translates an operation's (bool, error) outcome into a process
// exit status. This is the single place internal outcomes become exit
// semantics; library callers never need it, and the CLI applies it
// uniformly to all operations.
func ExitCode(ok bool, err error) int {
	switch {
	case errors.Is(err, ErrConflict):
		return ExitConflict
	case errors.Is(err, ErrPrecondition):
		return ExitPrecondition
	case errors.Is(err, ErrConvergence):
		return ExitConvergence
	case errors.Is(err, ErrDaemonUnavailable):
		return ExitDaemonUnavailable
	case errors.Is(err, ErrUnsupportedInput):
		return ExitUsage
	case err != nil:
		return ExitFailure
	case !ok:
		return ExitFailure
	default:
		return ExitOK
	}
}
