package supctl

import (
	"io/fs"
	"time"
)

// File name and layout constants
const (
	// DefaultConfigName is the native config file name used when a Config
	// does not specify an explicit path
	DefaultConfigName = "supervisord.conf"

	// SnapshotSuffix is appended to the native config path to derive the
	// snapshot path
	SnapshotSuffix = ".json"

	// PidfileName is the supervisord pidfile name under the working directory
	PidfileName = "supervisord.pid"

	// LogfileName is the supervisord logfile name under the working directory
	LogfileName = "supervisord.log"
)

// Timing defaults
const (
	// DefaultTimeout is the default convergence wait timeout for start/stop
	DefaultTimeout = 30 * time.Second

	// DefaultPollInterval is the default interval between liveness polls.
	// Convergence is coarse-grained; the daemon takes on the order of
	// seconds to come up or drain its children.
	DefaultPollInterval = 1 * time.Second

	// DefaultDialTimeout is the default timeout for a single liveness probe
	DefaultDialTimeout = 2 * time.Second
)

// Binary paths with defaults that can be overridden
const (
	// DefaultSupervisordPath is the default path to the supervisord binary
	DefaultSupervisordPath = "supervisord"

	// DefaultSupervisorctlPath is the default path to the supervisorctl binary
	DefaultSupervisorctlPath = "supervisorctl"
)

// File modes
const (
	// DirMode is the default mode for created directories
	DirMode fs.FileMode = 0o755

	// FileMode is the default mode for written config files
	FileMode fs.FileMode = 0o644
)
