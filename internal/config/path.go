package config

import (
	"os"
	"path/filepath"
)

// DefaultDataDir picks the storage root used when no data directory is
// configured: XDG_DATA_HOME when set, a system directory when one exists,
// the platform's application-data directory otherwise, and a dotdir under
// the home directory as the last resort.
func DefaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return "./data"
	}

	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "relay")
	}

	if isDir("/var/lib") {
		return "/var/lib/relay"
	}

	if isDir(filepath.Join(homeDir, "Library")) {
		// macOS
		return filepath.Join(homeDir, "Library", "Application Support", "Relay")
	}

	if isDir(filepath.Join(homeDir, "AppData")) {
		// Windows
		return filepath.Join(homeDir, "AppData", "Local", "Relay")
	}

	return filepath.Join(homeDir, ".relay")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
