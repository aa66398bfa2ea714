//go:build windows

package steam

import (
	"os"

	"golang.org/x/sys/windows/registry"
)

// getBaseDir returns the Steam base directory on Windows using the registry.
func getBaseDir() (string, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Wow6432Node\Valve\Steam`, registry.QUERY_VALUE)
	if err != nil {
		key, err = registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Valve\Steam`, registry.QUERY_VALUE)
		if err != nil {
			return fallbackBaseDir()
		}
	}
	defer key.Close()

	steamPath, _, err := key.GetStringValue("InstallPath")
	if err != nil {
		return fallbackBaseDir()
	}

	return steamPath, nil
}

// fallbackBaseDir probes the conventional install path when the registry
// keys are missing.
func fallbackBaseDir() (string, error) {
	const def = `C:\Program Files (x86)\Steam`
	if info, err := os.Stat(def); err == nil && info.IsDir() {
		return def, nil
	}
	return "", ErrSteamNotFound
}
