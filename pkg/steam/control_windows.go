//go:build windows

package steam

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// IsRunning checks if Steam is currently running.
func (c *Controller) IsRunning() bool {
	output, err := exec.Command("tasklist", "/FI", "IMAGENAME eq steam.exe").Output()
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(output)), "steam.exe")
}

// Shutdown gracefully closes Steam and waits for it to exit.
func (c *Controller) Shutdown() error {
	if !c.IsRunning() {
		return nil
	}

	if dir, err := getBaseDir(); err == nil {
		exec.Command(filepath.Join(dir, "steam.exe"), "-shutdown").Run()
	}
	if err := c.waitForExit(); err != nil {
		// Force kill as a last resort
		exec.Command("taskkill", "/IM", "steam.exe", "/F").Run()
		return c.waitForExit()
	}
	return nil
}

// Start launches Steam if it's not already running.
func (c *Controller) Start() error {
	if c.IsRunning() {
		return nil
	}

	dir, err := getBaseDir()
	if err != nil {
		return fmt.Errorf("failed to locate Steam: %w", err)
	}

	cmd := exec.Command(filepath.Join(dir, "steam.exe"))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start Steam: %w", err)
	}
	return nil
}
