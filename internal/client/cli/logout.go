package cli

import (
	"context"
	"fmt"
)

// RunLogout clears the persisted session
func (c *Cli) RunLogout(ctx context.Context) error {
	if err := c.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	fmt.Println("✓ Logged out")
	return nil
}
