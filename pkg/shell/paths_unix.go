//go:build unix

package shell

import (
	"os"
	"path/filepath"

	"src.noviq.dev/pkg/env"
)

// Returns $XDG_STATE_HOME, or ~/.local/state if it is not set.
func defaultStateHome() (string, error) {
	if dir := os.Getenv(env.XDG_STATE_HOME); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state"), nil
}
