package supctl

// Version is the current version of the go-supctl library
const Version = "0.1.0"

// VersionInfo contains detailed version information
type VersionInfo struct {
	// Version is the semantic version
	Version string
	// Daemon is the supervisor daemon this library drives
	Daemon string
}

// GetVersion returns the current version information
func GetVersion() VersionInfo {
	return VersionInfo{
		Version: Version,
		Daemon:  "supervisord",
	}
}
