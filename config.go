package supctl

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

// Program describes a single child program managed by supervisord.
// Field names mirror the options of a [program:x] section.
type Program struct {
	// Command is the command line to execute (required)
	Command string `json:"command"`
	// Directory is the working directory for the child process
	Directory string `json:"directory,omitempty"`
	// Autostart controls whether the program starts with the daemon.
	// nil keeps the daemon's default.
	Autostart *bool `json:"autostart,omitempty"`
	// Autorestart controls whether the program is restarted on exit
	Autorestart *bool `json:"autorestart,omitempty"`
	// StartSecs is how long the program must stay up to be considered started
	StartSecs int `json:"startsecs,omitempty"`
	// StartRetries is the number of serial start attempts before FATAL
	StartRetries int `json:"startretries,omitempty"`
	// StopSignal is the signal used to stop the program (e.g. "TERM")
	StopSignal string `json:"stopsignal,omitempty"`
	// StopWaitSecs is how long to wait after StopSignal before SIGKILL
	StopWaitSecs int `json:"stopwaitsecs,omitempty"`
	// ExitCodes are the exit codes treated as expected
	ExitCodes []int `json:"exitcodes,omitempty"`
	// User to run the program as
	User string `json:"user,omitempty"`
	// Priority orders program start/shutdown
	Priority int `json:"priority,omitempty"`
	// RedirectStderr sends the program's stderr to its stdout log
	RedirectStderr bool `json:"redirect_stderr,omitempty"`
	// StdoutLogfile is the path for captured stdout
	StdoutLogfile string `json:"stdout_logfile,omitempty"`
	// StderrLogfile is the path for captured stderr
	StderrLogfile string `json:"stderr_logfile,omitempty"`
	// Environment contains extra environment variables for the program
	Environment map[string]string `json:"environment,omitempty"`
}

// Config is a declarative description of a supervisord instance: its
// listening endpoint, credentials, file locations, and managed programs.
// A Config is never mutated by operations; replacing the desired state
// means constructing a new value and calling Write again.
type Config struct {
	// Port is the inet listen pattern, e.g. "*:9001" or "127.0.0.1:9001".
	// A bare port number is also accepted.
	Port string `json:"port"`
	// Username is the optional HTTP basic auth user for the control endpoint
	Username string `json:"username,omitempty"`
	// Password is the optional HTTP basic auth password
	Password string `json:"password,omitempty"`
	// WorkingDir is the directory holding generated artifacts, the pidfile
	// and the daemon logfile
	WorkingDir string `json:"working_dir"`
	// Path is the native config file path; empty derives
	// WorkingDir/supervisord.conf
	Path string `json:"path,omitempty"`
	// Program maps program names to their descriptors
	Program map[string]Program `json:"program"`
	// App is an optional nested sub-configuration for a specific managed
	// application. It is carried through serialization untouched; this
	// layer never interprets it.
	App json.RawMessage `json:"app,omitempty"`
}

// ConfigPath returns the path of the native config file supervisord reads
func (c *Config) ConfigPath() string {
	if c.Path != "" {
		return c.Path
	}
	return filepath.Join(c.WorkingDir, DefaultConfigName)
}

// SnapshotPath returns the path of the snapshot file: the serialized copy
// of this Config written alongside the native config, used for equality
// and conflict detection between invocations
func (c *Config) SnapshotPath() string {
	return c.ConfigPath() + SnapshotSuffix
}

// PidfilePath returns the supervisord pidfile path under WorkingDir
func (c *Config) PidfilePath() string {
	return filepath.Join(c.WorkingDir, PidfileName)
}

// LogfilePath returns the supervisord logfile path under WorkingDir
func (c *Config) LogfilePath() string {
	return filepath.Join(c.WorkingDir, LogfileName)
}

// ControlAddr returns the host:port the control endpoint listens on,
// suitable for dialing. Wildcard and empty hosts map to 127.0.0.1.
func (c *Config) ControlAddr() string {
	host, port := splitPort(c.Port)
	if host == "" || host == "*" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, port)
}

// ServerURL returns the HTTP URL of the control endpoint
func (c *Config) ServerURL() string {
	return "http://" + c.ControlAddr()
}

// splitPort splits an inet listen pattern into host and port.
// A bare port number yields an empty host.
func splitPort(s string) (host, port string) {
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}

// Serialize returns the deterministic JSON form of the configuration,
// terminated by a newline. Two configs are considered identical exactly
// when their serializations are byte-identical; encoding/json emits struct
// fields in declaration order and map keys sorted, so no extra
// canonicalization is needed.
func (c *Config) Serialize() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("serializing config: %w", err)
	}
	return append(data, '\n'), nil
}

// Validate checks the configuration is complete enough to render and drive
// a supervisord instance
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port not specified")
	}
	if _, port := splitPort(c.Port); port == "" {
		return fmt.Errorf("invalid port pattern %q", c.Port)
	}
	if c.WorkingDir == "" {
		return errors.New("working directory not specified")
	}
	if len(c.Program) == 0 {
		return errors.New("no programs specified")
	}
	for name, p := range c.Program {
		if name == "" {
			return errors.New("program with empty name")
		}
		if strings.ContainsAny(name, " []") {
			return fmt.Errorf("invalid program name %q", name)
		}
		if p.Command == "" {
			return fmt.Errorf("program %q: command not specified", name)
		}
	}
	return nil
}

// WriteSnapshot serializes the configuration to the snapshot path.
// The write is atomic; a concurrent reader sees either the old or the new
// snapshot, never a partial one.
func (c *Config) WriteSnapshot() error {
	data, err := c.Serialize()
	if err != nil {
		return &OpError{Op: OpWrite, Path: c.SnapshotPath(), Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(c.SnapshotPath()), DirMode); err != nil {
		return &OpError{Op: OpWrite, Path: c.SnapshotPath(), Err: err}
	}
	if err := renameio.WriteFile(c.SnapshotPath(), data, FileMode); err != nil {
		return &OpError{Op: OpWrite, Path: c.SnapshotPath(), Err: err}
	}
	return nil
}

// RemoveArtifacts deletes the rendered native config and the snapshot.
// Missing files are not an error. The daemon's own pidfile and logfile are
// left alone; they belong to the daemon.
func (c *Config) RemoveArtifacts() error {
	for _, path := range []string{c.ConfigPath(), c.SnapshotPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return &OpError{Op: OpWrite, Path: path, Err: err}
		}
	}
	return nil
}
