package fs

import (
	"os"
	"path/filepath"
)

// DefaultConfigDir returns the default configuration directory for
// diffrec. Uses XDG_CONFIG_HOME if set, otherwise falls back to
// ~/.config/diffrec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "diffrec")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "diffrec")
}
