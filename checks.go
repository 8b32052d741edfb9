package supctl

import (
	"bytes"
	"context"
	"os"
)

// The predicates in this file answer yes/no questions about current
// on-disk and daemon state. They never return errors: every ambiguity
// (unreadable file, refused connection, timeout) collapses to a boolean,
// because the daemon is a separate process that may have been started or
// stopped out-of-band and state must be re-observed on every call.

// Exists reports whether the configuration has been written: both the
// native config file and the snapshot must be present on disk. Pure
// filesystem check; the daemon is never contacted.
func Exists(cfg *Config) bool {
	for _, path := range []string{cfg.ConfigPath(), cfg.SnapshotPath()} {
		if _, err := os.Stat(path); err != nil {
			return false
		}
	}
	return true
}

// Same reports whether it is safe to write this configuration: true when
// no snapshot exists yet, or when the existing snapshot matches the
// serialization of cfg byte-for-byte after trimming trailing whitespace.
// False means a differing configuration was written earlier and Write
// must not clobber it.
func Same(cfg *Config) bool {
	existing, err := os.ReadFile(cfg.SnapshotPath())
	if os.IsNotExist(err) {
		return true
	}
	if err != nil {
		// Unreadable snapshot is treated as a conflict, not silently
		// overwritten.
		return false
	}
	want, err := cfg.Serialize()
	if err != nil {
		return false
	}
	return bytes.Equal(trimTrailing(existing), trimTrailing(want))
}

func trimTrailing(b []byte) []byte {
	return bytes.TrimRight(b, " \t\r\n")
}

// Running reports whether the supervisord instance described by cfg is up,
// by probing its control endpoint. Probe failures of any kind mean "not
// running".
func Running(ctx context.Context, d Daemon, cfg *Config) bool {
	return d.Probe(ctx, cfg.ControlAddr())
}
