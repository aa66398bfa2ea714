//go:build darwin

package steam

import (
	"os"
	"path/filepath"
)

// getBaseDir returns the Steam base directory on macOS.
func getBaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, "Library", "Application Support", "Steam")
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir, nil
	}

	return "", ErrSteamNotFound
}
