package steam

import (
	"fmt"
	"time"
)

// shutdownTimeout bounds how long Restart waits for Steam to exit.
const shutdownTimeout = 30 * time.Second

// Controller manages the local Steam client process. Steam holds
// shortcuts.vdf open while running, so the client is shut down before the
// file is rewritten and started again afterwards.
type Controller struct{}

// NewController creates a new Steam controller.
func NewController() *Controller {
	return &Controller{}
}

// ShutdownIfRunning shuts Steam down when a Steam process is present.
// Returns whether a shutdown was performed, so the caller knows to start
// the client again once it is done with the files Steam keeps open.
func (c *Controller) ShutdownIfRunning() (bool, error) {
	if !c.IsRunning() {
		return false, nil
	}

	if err := c.Shutdown(); err != nil {
		return false, fmt.Errorf("failed to stop Steam: %w", err)
	}
	return true, nil
}

// waitForExit polls until Steam is gone or the timeout elapses.
func (c *Controller) waitForExit() error {
	deadline := time.Now().Add(shutdownTimeout)
	for time.Now().Before(deadline) {
		if !c.IsRunning() {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("timeout waiting for Steam to close")
}
