package steam

import (
	"os"
	"path/filepath"
	"testing"
)

const localConfigSample = `"UserLocalConfigStore"
{
	"friends"
	{
		"PersonaName"		"Gordon"
	}
}
`

const loginUsersSample = `"users"
{
	"76561198012345678"
	{
		"AccountName"		"gordon"
		"PersonaName"		"Gordon"
		"MostRecent"		"1"
	}
	"76561198087654321"
	{
		"AccountName"		"barney"
		"PersonaName"		"Barney"
		"MostRecent"		"0"
	}
}
`

// makeUser creates a userdata account directory, optionally with a
// localconfig.vdf carrying a persona name.
func makeUser(t *testing.T, paths *Paths, userID, localConfig string) {
	t.Helper()
	if err := os.MkdirAll(paths.ConfigDir(userID), 0755); err != nil {
		t.Fatal(err)
	}
	if localConfig != "" {
		if err := os.WriteFile(paths.LocalConfigPath(userID), []byte(localConfig), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestListUsers(t *testing.T) {
	paths := NewPathsWithBase(t.TempDir())

	makeUser(t, paths, "52079950", localConfigSample)
	makeUser(t, paths, "100", "")

	// Directories that must not qualify
	os.MkdirAll(filepath.Join(paths.UserDataDir(), "notanumber"), 0755)
	os.MkdirAll(filepath.Join(paths.UserDataDir(), "200"), 0755) // no config subdir

	users, err := ListUsers(paths)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}

	if len(users) != 2 {
		t.Fatalf("ListUsers() returned %d users, want 2", len(users))
	}
	if users[0].ID != "100" {
		t.Errorf("users[0].ID = %q, want %q", users[0].ID, "100")
	}
	if users[0].PersonaName != "Unknown" {
		t.Errorf("users[0].PersonaName = %q, want %q", users[0].PersonaName, "Unknown")
	}
	if users[1].ID != "52079950" {
		t.Errorf("users[1].ID = %q, want %q", users[1].ID, "52079950")
	}
	if users[1].PersonaName != "Gordon" {
		t.Errorf("users[1].PersonaName = %q, want %q", users[1].PersonaName, "Gordon")
	}
}

func TestListUsers_Empty(t *testing.T) {
	paths := NewPathsWithBase(t.TempDir())

	users, err := ListUsers(paths)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 0 {
		t.Errorf("ListUsers() returned %d users, want 0", len(users))
	}
}

func TestListUsers_ReflectsFilesystem(t *testing.T) {
	paths := NewPathsWithBase(t.TempDir())
	makeUser(t, paths, "100", "")

	users, _ := ListUsers(paths)
	if len(users) != 1 {
		t.Fatalf("ListUsers() returned %d users, want 1", len(users))
	}

	// Re-enumeration picks up new accounts; no caching.
	makeUser(t, paths, "200", "")
	users, _ = ListUsers(paths)
	if len(users) != 2 {
		t.Errorf("ListUsers() returned %d users after adding one, want 2", len(users))
	}
}

func TestMostRecentUser(t *testing.T) {
	paths := NewPathsWithBase(t.TempDir())

	// 76561198012345678 - 76561197960265728 = 52079950
	makeUser(t, paths, "52079950", localConfigSample)
	makeUser(t, paths, "100", "")

	if err := os.MkdirAll(filepath.Join(paths.BaseDir(), "config"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.LoginUsersPath(), []byte(loginUsersSample), 0644); err != nil {
		t.Fatal(err)
	}

	user, err := MostRecentUser(paths)
	if err != nil {
		t.Fatalf("MostRecentUser() error = %v", err)
	}
	if user.ID != "52079950" {
		t.Errorf("MostRecentUser().ID = %q, want %q", user.ID, "52079950")
	}
	if user.PersonaName != "Gordon" {
		t.Errorf("MostRecentUser().PersonaName = %q, want %q", user.PersonaName, "Gordon")
	}
}

func TestMostRecentUser_NoLoginUsers(t *testing.T) {
	paths := NewPathsWithBase(t.TempDir())
	makeUser(t, paths, "100", "")

	if _, err := MostRecentUser(paths); err == nil {
		t.Fatal("MostRecentUser() should fail without loginusers.vdf")
	}
}
