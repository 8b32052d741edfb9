package supctl

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/renameio/v2"
)

// Render generates the native supervisord INI text for the configuration.
// Sections and keys appear in a fixed order and program sections in sorted
// name order, so rendering is deterministic.
func (c *Config) Render() string {
	var lines []string

	lines = append(lines, "[inet_http_server]")
	lines = append(lines, "port="+c.Port)
	if c.Username != "" {
		lines = append(lines, "username="+c.Username)
	}
	if c.Password != "" {
		lines = append(lines, "password="+c.Password)
	}

	lines = append(lines, "")
	lines = append(lines, "[supervisord]")
	lines = append(lines, "logfile="+c.LogfilePath())
	lines = append(lines, "pidfile="+c.PidfilePath())
	lines = append(lines, "directory="+c.WorkingDir)
	lines = append(lines, "nodaemon=false")

	lines = append(lines, "")
	lines = append(lines, "[supervisorctl]")
	lines = append(lines, "serverurl="+c.ServerURL())
	if c.Username != "" {
		lines = append(lines, "username="+c.Username)
	}
	if c.Password != "" {
		lines = append(lines, "password="+c.Password)
	}

	lines = append(lines, "")
	lines = append(lines, "[rpcinterface:supervisor]")
	lines = append(lines, "supervisor.rpcinterface_factory = supervisor.rpcinterface:make_main_rpcinterface")

	for _, name := range c.programNames() {
		lines = append(lines, "")
		lines = append(lines, c.Program[name].render(name)...)
	}

	return strings.Join(lines, "\n") + "\n"
}

// programNames returns the program names in sorted order
func (c *Config) programNames() []string {
	names := make([]string, 0, len(c.Program))
	for name := range c.Program {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// render generates the [program:name] section lines
func (p Program) render(name string) []string {
	var lines []string
	lines = append(lines, fmt.Sprintf("[program:%s]", name))
	lines = append(lines, "command="+p.Command)

	if p.Directory != "" {
		lines = append(lines, "directory="+p.Directory)
	}
	if p.Autostart != nil {
		lines = append(lines, "autostart="+boolValue(*p.Autostart))
	}
	if p.Autorestart != nil {
		lines = append(lines, "autorestart="+boolValue(*p.Autorestart))
	}
	if p.StartSecs > 0 {
		lines = append(lines, fmt.Sprintf("startsecs=%d", p.StartSecs))
	}
	if p.StartRetries > 0 {
		lines = append(lines, fmt.Sprintf("startretries=%d", p.StartRetries))
	}
	if p.StopSignal != "" {
		lines = append(lines, "stopsignal="+p.StopSignal)
	}
	if p.StopWaitSecs > 0 {
		lines = append(lines, fmt.Sprintf("stopwaitsecs=%d", p.StopWaitSecs))
	}
	if len(p.ExitCodes) > 0 {
		codes := make([]string, len(p.ExitCodes))
		for i, code := range p.ExitCodes {
			codes[i] = fmt.Sprintf("%d", code)
		}
		lines = append(lines, "exitcodes="+strings.Join(codes, ","))
	}
	if p.User != "" {
		lines = append(lines, "user="+p.User)
	}
	if p.Priority > 0 {
		lines = append(lines, fmt.Sprintf("priority=%d", p.Priority))
	}
	if p.RedirectStderr {
		lines = append(lines, "redirect_stderr=true")
	}
	if p.StdoutLogfile != "" {
		lines = append(lines, "stdout_logfile="+p.StdoutLogfile)
	}
	if p.StderrLogfile != "" {
		lines = append(lines, "stderr_logfile="+p.StderrLogfile)
	}
	if len(p.Environment) > 0 {
		lines = append(lines, "environment="+renderEnv(p.Environment))
	}

	return lines
}

// boolValue formats a bool the way supervisord expects
func boolValue(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// renderEnv formats environment variables as KEY="value" pairs in sorted
// key order, the format supervisord expects
func renderEnv(env map[string]string) string {
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		value := strings.ReplaceAll(env[key], `"`, `\"`)
		pairs = append(pairs, fmt.Sprintf(`%s="%s"`, key, value))
	}
	return strings.Join(pairs, ",")
}

// WriteNative renders the configuration and writes the native config file
// atomically (write-then-rename), so the daemon never reads a partial file
func (c *Config) WriteNative() error {
	if err := os.MkdirAll(filepath.Dir(c.ConfigPath()), DirMode); err != nil {
		return &OpError{Op: OpWrite, Path: c.ConfigPath(), Err: err}
	}
	if err := renameio.WriteFile(c.ConfigPath(), []byte(c.Render()), FileMode); err != nil {
		return &OpError{Op: OpWrite, Path: c.ConfigPath(), Err: err}
	}
	return nil
}
