//go:build !windows && !darwin

package steam

import (
	"fmt"
	"os/exec"
	"strings"
)

const flatpakAppID = "com.valvesoftware.Steam"

// isFlatpak reports whether Steam is installed as a Flatpak.
func isFlatpak() bool {
	if _, err := exec.LookPath("flatpak"); err != nil {
		return false
	}
	return exec.Command("flatpak", "info", flatpakAppID).Run() == nil
}

// IsRunning checks if Steam is currently running.
func (c *Controller) IsRunning() bool {
	if isFlatpak() {
		if exec.Command("pgrep", "-f", flatpakAppID).Run() == nil {
			return true
		}
	}
	output, err := exec.Command("pgrep", "-x", "steam").Output()
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

	if isFlatpak() {
		if err := exec.Command("flatpak", "kill", flatpakAppID).Run(); err != nil {
			exec.Command("pkill", "-f", flatpakAppID).Run()
		}
	} else {
		// steam -shutdown closes the client cleanly
		if err := exec.Command("steam", "-shutdown").Run(); err != nil {
			exec.Command("sh", "-c", "steam -shutdown >/dev/null 2>&1 || true").Run()
		}
	}

	return c.waitForExit()
}

// Start launches Steam if it's not already running.
func (c *Controller) Start() error {
	if c.IsRunning() {
		return nil
	}

	var cmd *exec.Cmd
	if isFlatpak() {
		cmd = exec.Command("flatpak", "run", flatpakAppID)
	} else {
		cmd = exec.Command("steam")
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start Steam: %w", err)
	}
	return nil
}
