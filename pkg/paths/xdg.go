// Package paths provides XDG-compliant path resolution for autosync's
// per-user files.
//
// Resolution order:
// 1. AUTOSYNC_HOME (portable root) → $AUTOSYNC_HOME/{config,state}
// 2. XDG env vars → $XDG_*_HOME/autosync
// 3. Platform defaults → ~/.config/autosync, ~/.local/state/autosync
package paths

import (
	"os"
	"path/filepath"
)

func getConfigHome() string {
	if home := os.Getenv("AUTOSYNC_HOME"); home != "" {
		return filepath.Join(home, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

func getStateHome() string {
	if home := os.Getenv("AUTOSYNC_HOME"); home != "" {
		return filepath.Join(home, "state")
	}
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// ConfigDir returns the per-user configuration directory. Repository-level
// settings live in the repository itself; this holds user-wide defaults.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "autosync")
}

// StateDir returns the per-user state directory, used for logs when no
// repository directory is available.
func StateDir() string {
	base := getStateHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "autosync")
}
