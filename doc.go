// Package supctl manages the lifecycle of an external supervisord instance
// through a declarative configuration value.
//
// A Config describes the desired state of one supervisord daemon: its
// control endpoint, credentials, file locations and managed programs. The
// Control type turns that value into on-disk config files and drives the
// daemon through idempotent write/start/stop transitions that are safe to
// invoke repeatedly:
//
//	ctl := supctl.New()
//
//	cfg := &supctl.Config{
//	    Port:       "*:9001",
//	    WorkingDir: "/var/run/myapp",
//	    Program: map[string]supctl.Program{
//	        "worker": {Command: "myapp worker"},
//	    },
//	}
//
//	ok, err := ctl.Write(ctx, cfg)  // render config files
//	ok, err = ctl.Start(ctx, cfg)   // launch and wait for liveness
//	ok, err = ctl.Stop(ctx, cfg)    // terminate and wait for shutdown
//
// Every operation also accepts inline JSON text or a path to a JSON file
// in place of a *Config; see Load.
//
// # Idempotency
//
// Operations consult pure predicates (Exists, Same, Running) that
// re-observe the filesystem and the daemon on every call, never cached
// in-process state, because the daemon may have been started or stopped
// out-of-band. Start on a running daemon and Stop on a stopped one are
// successful no-ops. Write refuses to clobber a differing configuration
// written earlier (ErrConflict); nothing is overwritten silently.
//
// Alongside the native config file, Write records a snapshot: a
// deterministic JSON serialization of the Config used purely for equality
// and conflict detection between invocations.
//
// # Convergence
//
// Start and Stop block until the requested state becomes externally
// observable, polling the control endpoint via WaitFor with a bounded
// timeout. A side effect that was issued but never confirmed fails with
// ErrConvergence, distinct from a violated precondition or a conflict.
//
// # Design Philosophy
//
// This library prioritizes:
//
//   - Idempotent operations safe under repeated invocation
//   - Fresh observation of external state (no in-process caching)
//   - Injected dependencies (Daemon, Clock) so tests run without a real
//     supervisord or real delays
//   - Distinct, matchable error kinds with stable exit-code mappings
//
// Single-threaded by design: there is no internal parallelism, and
// concurrent invocations from independent processes against the same
// paths are intentionally uncoordinated.
package supctl
