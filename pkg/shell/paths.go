package shell

import (
	"fmt"
	"path/filepath"
)

// Returns the default path of the history database, under the state
// directory of the user.
func defaultDBPath() (string, error) {
	stateHome, err := defaultStateHome()
	if err != nil {
		return "", fmt.Errorf("cannot find state directory: %w", err)
	}
	return filepath.Join(stateHome, "noviq", "db.bolt"), nil
}
