package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lobinuxsoft/nonsteam/internal/config"
	"github.com/lobinuxsoft/nonsteam/pkg/steam"
)

func newMultiUserPaths(t *testing.T, userIDs ...string) *steam.Paths {
	t.Helper()
	base := t.TempDir()
	for _, id := range userIDs {
		if err := os.MkdirAll(filepath.Join(base, "userdata", id, "config"), 0755); err != nil {
			t.Fatal(err)
		}
	}
	return steam.NewPathsWithBase(base)
}

func testPrompter(input string) (*prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return newPrompter(strings.NewReader(input), &out), &out
}

func TestPrompterAsk(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		defaultValue string
		want         string
	}{
		{name: "answer", input: "hello\n", want: "hello"},
		{name: "trims whitespace", input: "  hello  \n", want: "hello"},
		{name: "empty uses default", input: "\n", defaultValue: "fallback", want: "fallback"},
		{name: "answer beats default", input: "hello\n", defaultValue: "fallback", want: "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := testPrompter(tt.input)
			got, err := p.ask("Question", tt.defaultValue)
			if err != nil {
				t.Fatalf("ask() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ask() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelectUser_Explicit(t *testing.T) {
	paths := newMultiUserPaths(t, "100", "200")
	p, _ := testPrompter("")

	u, err := selectUser(paths, nil, "200", p)
	if err != nil {
		t.Fatalf("selectUser() error = %v", err)
	}
	if u.ID != "200" {
		t.Errorf("selected %q, want 200", u.ID)
	}
}

func TestSelectUser_ExplicitMissing(t *testing.T) {
	paths := newMultiUserPaths(t, "100")
	p, _ := testPrompter("")

	_, err := selectUser(paths, nil, "999", p)
	if !errors.Is(err, steam.ErrUserNotFound) {
		t.Errorf("selectUser() error = %v, want ErrUserNotFound", err)
	}
}

func TestSelectUser_Single(t *testing.T) {
	paths := newMultiUserPaths(t, "100")
	p, _ := testPrompter("")

	u, err := selectUser(paths, nil, "", p)
	if err != nil {
		t.Fatalf("selectUser() error = %v", err)
	}
	if u.ID != "100" {
		t.Errorf("selected %q, want the only account", u.ID)
	}
}

func TestSelectUser_Preferred(t *testing.T) {
	paths := newMultiUserPaths(t, "100", "200")
	cfg := config.NewManagerWithPath(filepath.Join(t.TempDir(), "config.json"))
	if err := cfg.SetPreferredUser("200"); err != nil {
		t.Fatal(err)
	}
	p, _ := testPrompter("")

	u, err := selectUser(paths, cfg, "", p)
	if err != nil {
		t.Fatalf("selectUser() error = %v", err)
	}
	if u.ID != "200" {
		t.Errorf("selected %q, want the preferred account", u.ID)
	}
}

func TestSelectUser_InteractivePick(t *testing.T) {
	paths := newMultiUserPaths(t, "100", "200")
	p, out := testPrompter("2\n")

	u, err := selectUser(paths, nil, "", p)
	if err != nil {
		t.Fatalf("selectUser() error = %v", err)
	}
	if u.ID != "200" {
		t.Errorf("selected %q, want the second listed account", u.ID)
	}
	if !strings.Contains(out.String(), "Multiple Steam accounts") {
		t.Errorf("prompt output %q should list the accounts", out.String())
	}
}

func TestSelectUser_InteractiveInvalid(t *testing.T) {
	paths := newMultiUserPaths(t, "100", "200")
	p, _ := testPrompter("7\n")

	if _, err := selectUser(paths, nil, "", p); err == nil {
		t.Error("selectUser() should reject an out-of-range pick")
	}
}

func TestSelectUser_NoAccounts(t *testing.T) {
	paths := steam.NewPathsWithBase(t.TempDir())
	p, _ := testPrompter("")

	_, err := selectUser(paths, nil, "", p)
	if !errors.Is(err, steam.ErrUserNotFound) {
		t.Errorf("selectUser() error = %v, want ErrUserNotFound", err)
	}
}
