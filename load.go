package supctl

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Load normalizes any accepted input shape into a *Config:
//
//   - a *Config is returned unchanged (identity preserving, no
//     reserialization)
//   - a string or []byte whose first non-whitespace byte is '{' is parsed
//     as JSON text
//   - any other string is treated as a filesystem path whose content is
//     parsed as JSON
//
// Anything else fails with ErrUnsupportedInput. That is a programmer
// error, not an environment failure; callers should fix the call site
// rather than catch it.
func Load(v any) (*Config, error) {
	switch in := v.(type) {
	case *Config:
		return in, nil
	case Config:
		return &in, nil
	case string:
		return loadText(in)
	case []byte:
		return loadText(string(in))
	default:
		return nil, &OpError{Op: OpLoad, Err: fmt.Errorf("%w: %T", ErrUnsupportedInput, v)}
	}
}

// loadText parses inline JSON, or reads and parses the file at the given
// path
func loadText(s string) (*Config, error) {
	if strings.HasPrefix(strings.TrimSpace(s), "{") {
		return parseConfig([]byte(s), "")
	}
	data, err := os.ReadFile(s)
	if err != nil {
		return nil, &OpError{Op: OpLoad, Path: s, Err: err}
	}
	return parseConfig(data, s)
}

// parseConfig unmarshals and validates JSON config text
func parseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &OpError{Op: OpLoad, Path: path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &OpError{Op: OpLoad, Path: path, Err: err}
	}
	return &cfg, nil
}
