package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lobinuxsoft/nonsteam/internal/config"
	"github.com/lobinuxsoft/nonsteam/pkg/steam"
)

// loadConfig returns the persistent config manager, or nil when the user
// config directory is unavailable. Every caller treats nil as "no saved
// preferences".
func loadConfig() *config.Manager {
	cfg, err := config.NewManager()
	if err != nil {
		return nil
	}
	return cfg
}

// prompter reads interactive answers line by line.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask prints the question and returns the trimmed answer, or the default
// when the answer is empty.
func (p *prompter) ask(question, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", question, defaultValue)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// selectUser resolves which Steam account receives the shortcut. Priority:
// the explicit id, the configured preference, the most recently logged in
// account, a single discovered account, then an interactive pick. No
// accounts at all is fatal.
func selectUser(paths *steam.Paths, cfg *config.Manager, explicit string, p *prompter) (steam.User, error) {
	users, err := steam.ListUsers(paths)
	if err != nil {
		return steam.User{}, err
	}
	if len(users) == 0 {
		return steam.User{}, fmt.Errorf("no accounts under %s: %w", paths.UserDataDir(), steam.ErrUserNotFound)
	}

	find := func(id string) (steam.User, bool) {
		for _, u := range users {
			if u.ID == id {
				return u, true
			}
		}
		return steam.User{}, false
	}

	if explicit != "" {
		u, ok := find(explicit)
		if !ok {
			return steam.User{}, fmt.Errorf("account %s: %w", explicit, steam.ErrUserNotFound)
		}
		return u, nil
	}

	if cfg != nil {
		if u, ok := find(cfg.GetPreferredUser()); ok {
			return u, nil
		}
	}

	if recent, err := steam.MostRecentUser(paths); err == nil {
		if u, ok := find(recent.ID); ok {
			return u, nil
		}
	}

	if len(users) == 1 {
		return users[0], nil
	}

	fmt.Fprintln(p.out, "Multiple Steam accounts found:")
	for i, u := range users {
		fmt.Fprintf(p.out, "  %d) %s (%s)\n", i+1, u.PersonaName, u.ID)
	}
	answer, err := p.ask("Select account", "1")
	if err != nil {
		return steam.User{}, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(users) {
		return steam.User{}, fmt.Errorf("invalid selection %q", answer)
	}
	return users[n-1], nil
}
