package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lobinuxsoft/nonsteam/pkg/steam"
)

// newSteamTree builds a plausible Steam installation with one account.
func newSteamTree(t *testing.T, userID string) string {
	t.Helper()
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "userdata", userID, "config"), 0755); err != nil {
		t.Fatal(err)
	}
	return base
}

func newFakeExe(t *testing.T) string {
	t.Helper()
	exe := filepath.Join(t.TempDir(), "mygame")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return exe
}

// newGridDBServer serves search, the five image endpoints and the image
// bytes themselves.
func newGridDBServer(t *testing.T) *httptest.Server {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var imgBuf bytes.Buffer
	if err := png.Encode(&imgBuf, img); err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/image.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(imgBuf.Bytes())
	})
	mux.HandleFunc("/search/autocomplete/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    []map[string]interface{}{{"id": 7, "name": "My Game"}},
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		imageURL := fmt.Sprintf("http://%s/image.png", r.Host)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    []map[string]interface{}{{"id": 1, "url": imageURL, "score": 3}},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestAdd_EndToEnd(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	base := newSteamTree(t, "100")
	exe := newFakeExe(t)
	srv := newGridDBServer(t)
	t.Setenv("STEAMGRIDDB_BASE_URL", srv.URL)
	t.Setenv("STEAMGRIDDB_API_KEY", "test-key")

	out, _, err := runCommand(t,
		"add", "--steam-dir", base, "--exe", exe, "--name", "My Game",
		"--user", "100", "--no-restart")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	paths := steam.NewPathsWithBase(base)
	shortcuts, err := steam.LoadShortcuts(paths.ShortcutsPath("100"))
	if err != nil {
		t.Fatalf("LoadShortcuts() error = %v", err)
	}
	if shortcuts.Len() != 1 {
		t.Fatalf("shortcuts.Len() = %d, want 1", shortcuts.Len())
	}

	sc := shortcuts.All()[0]
	if sc.Name() != "My Game" {
		t.Errorf("Name() = %q, want %q", sc.Name(), "My Game")
	}
	if got, want := sc.Exe(), steam.QuotePath(exe); got != want {
		t.Errorf("Exe() = %q, want %q", got, want)
	}
	wantAppID := steam.AppID(exe, "My Game")
	if sc.AppID() != wantAppID {
		t.Errorf("AppID() = %d, want %d", sc.AppID(), wantAppID)
	}

	// All five artwork kinds land in the grid directory and the icon is
	// wired into the shortcut record.
	for _, artType := range steam.AllArtworkTypes() {
		path := paths.ArtworkPath("100", wantAppID, artType, "png")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing %s artwork: %v", artType, err)
		}
	}
	if sc.Icon() == "" {
		t.Error("shortcut icon should point at the downloaded icon file")
	}

	if !strings.Contains(out, "Added shortcut") {
		t.Errorf("output %q should confirm the add", out)
	}
}

func TestAdd_NoArtwork(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	base := newSteamTree(t, "100")
	exe := newFakeExe(t)

	_, _, err := runCommand(t,
		"add", "--steam-dir", base, "--exe", exe, "--name", "My Game",
		"--user", "100", "--no-artwork", "--no-restart")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	paths := steam.NewPathsWithBase(base)
	if !paths.HasShortcuts("100") {
		t.Error("shortcuts.vdf should exist")
	}
	if _, err := os.Stat(paths.GridDir("100")); !os.IsNotExist(err) {
		t.Error("grid dir should not be created when artwork is skipped")
	}
}

func TestAdd_TwiceUpdatesInPlace(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	base := newSteamTree(t, "100")
	exe := newFakeExe(t)

	args := []string{
		"add", "--steam-dir", base, "--exe", exe, "--name", "My Game",
		"--user", "100", "--no-artwork", "--no-restart",
	}
	if _, _, err := runCommand(t, args...); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	out, _, err := runCommand(t, append(args, "--launch-options=--fullscreen")...)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if !strings.Contains(out, "Updated existing shortcut") {
		t.Errorf("output %q should report an update", out)
	}

	paths := steam.NewPathsWithBase(base)
	shortcuts, err := steam.LoadShortcuts(paths.ShortcutsPath("100"))
	if err != nil {
		t.Fatal(err)
	}
	if shortcuts.Len() != 1 {
		t.Errorf("shortcuts.Len() = %d after re-add, want 1", shortcuts.Len())
	}
	if got := shortcuts.All()[0].LaunchOptions(); got != "--fullscreen" {
		t.Errorf("LaunchOptions() = %q, want %q", got, "--fullscreen")
	}
}

func TestAdd_SteamNotFound(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	exe := newFakeExe(t)

	// A directory without userdata is not a Steam installation.
	_, _, err := runCommand(t,
		"add", "--steam-dir", t.TempDir(), "--exe", exe, "--name", "My Game",
		"--no-artwork", "--no-restart")
	if err == nil {
		t.Fatal("add should fail when the Steam directory is implausible")
	}
}

func TestAdd_UnknownUser(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	base := newSteamTree(t, "100")
	exe := newFakeExe(t)

	_, _, err := runCommand(t,
		"add", "--steam-dir", base, "--exe", exe, "--name", "My Game",
		"--user", "999", "--no-artwork", "--no-restart")
	if err == nil {
		t.Fatal("add should fail for an account that does not exist")
	}
}

func TestUsers(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	base := newSteamTree(t, "100")
	if err := os.MkdirAll(filepath.Join(base, "userdata", "200", "config"), 0755); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCommand(t, "users", "--steam-dir", base)
	if err != nil {
		t.Fatalf("users failed: %v", err)
	}
	if !strings.Contains(out, "100") || !strings.Contains(out, "200") {
		t.Errorf("output %q should list both accounts", out)
	}
}
