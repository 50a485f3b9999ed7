// ABOUTME: Small OS helpers shared across packages: env expansion, file checks,
// ABOUTME: XDG directory resolution and executable lookup.

package platform

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// AppName is used for XDG subdirectories
const AppName = "audio-switcher"

// FileExists reports whether path exists (file or directory)
func FileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// ExpandEnv expands ${VAR}/$VAR references and a leading ~ in path.
// Unset variables are left untouched so misconfiguration stays visible.
func ExpandEnv(path string) string {
	if path == "" {
		return path
	}

	expanded := os.Expand(path, func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return "${" + key + "}"
	})

	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			expanded = filepath.Join(home, strings.TrimPrefix(expanded, "~"))
		}
	}

	return expanded
}

// ConfigDir returns $XDG_CONFIG_HOME/audio-switcher (or ~/.config/audio-switcher)
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns $XDG_STATE_HOME/audio-switcher (or ~/.local/state/audio-switcher)
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgDir(envKey, fallback string) string {
	dir := os.Getenv(envKey)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		dir = filepath.Join(home, fallback)
	}
	return filepath.Join(dir, AppName)
}

// CommandAvailable reports whether name resolves on PATH
func CommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
