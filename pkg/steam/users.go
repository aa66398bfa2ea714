package steam

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/andygrunwald/vdf"
)

// User is one local Steam account discovered under userdata.
type User struct {
	// ID is the Steam3 account id, which is also the directory name.
	ID string
	// Dir is the account's data directory.
	Dir string
	// PersonaName is the display name from localconfig.vdf, or "Unknown".
	PersonaName string
}

// ListUsers enumerates local Steam accounts: numeric-named subdirectories of
// userdata that contain a config directory. The result reflects filesystem
// state at call time; an empty slice is a valid outcome.
func ListUsers(paths *Paths) ([]User, error) {
	entries, err := os.ReadDir(paths.UserDataDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read userdata: %w", err)
	}

	var users []User
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := entry.Name()
		if _, err := strconv.ParseUint(id, 10, 64); err != nil {
			continue
		}
		if info, err := os.Stat(paths.ConfigDir(id)); err != nil || !info.IsDir() {
			continue
		}
		users = append(users, User{
			ID:          id,
			Dir:         paths.UserDir(id),
			PersonaName: personaName(paths, id),
		})
	}

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// personaName reads the account display name from localconfig.vdf.
// Any failure yields "Unknown" rather than an error; the name is cosmetic.
func personaName(paths *Paths, userID string) string {
	f, err := os.Open(paths.LocalConfigPath(userID))
	if err != nil {
		return "Unknown"
	}
	defer f.Close()

	data, err := vdf.NewParser(f).Parse()
	if err != nil {
		return "Unknown"
	}

	store, ok := data["UserLocalConfigStore"].(map[string]interface{})
	if !ok {
		return "Unknown"
	}
	friends, ok := store["friends"].(map[string]interface{})
	if !ok {
		return "Unknown"
	}
	if name, ok := friends["PersonaName"].(string); ok && name != "" {
		return name
	}
	return "Unknown"
}

// MostRecentUser returns the account flagged MostRecent in loginusers.vdf,
// matched against the accounts discovered on disk. loginusers.vdf keys are
// SteamID64 values; the userdata directory name is the low 32 bits.
func MostRecentUser(paths *Paths) (User, error) {
	f, err := os.Open(paths.LoginUsersPath())
	if err != nil {
		return User{}, ErrUserNotFound
	}
	defer f.Close()

	data, err := vdf.NewParser(f).Parse()
	if err != nil {
		return User{}, fmt.Errorf("failed to parse loginusers.vdf: %w", err)
	}

	usersMap, ok := data["users"].(map[string]interface{})
	if !ok {
		return User{}, ErrUserNotFound
	}

	for steamID, v := range usersMap {
		info, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		if recent, _ := info["MostRecent"].(string); recent != "1" {
			continue
		}

		id64, err := strconv.ParseUint(steamID, 10, 64)
		if err != nil {
			continue
		}
		accountID := strconv.FormatUint(id64&0xFFFFFFFF, 10)

		users, err := ListUsers(paths)
		if err != nil {
			return User{}, err
		}
		for _, u := range users {
			if u.ID == accountID {
				return u, nil
			}
		}
	}

	return User{}, ErrUserNotFound
}
