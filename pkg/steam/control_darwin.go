//go:build darwin

package steam

import (
	"fmt"
	"os/exec"
	"strings"
)

// IsRunning checks if Steam is currently running.
func (c *Controller) IsRunning() bool {
	output, err := exec.Command("pgrep", "-f", "steam_osx").Output()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(output)) != ""
}

// Shutdown gracefully closes Steam and waits for it to exit.
func (c *Controller) Shutdown() error {
	if !c.IsRunning() {
		return nil
	}

	if err := exec.Command("osascript", "-e", `quit app "Steam"`).Run(); err != nil {
		exec.Command("pkill", "-f", "steam_osx").Run()
	}
	return c.waitForExit()
}

// Start launches Steam if it's not already running.
func (c *Controller) Start() error {
	if c.IsRunning() {
		return nil
	}

	if err := exec.Command("open", "-a", "Steam").Start(); err != nil {
		return fmt.Errorf("failed to start Steam: %w", err)
	}
	return nil
}
