package cli

import (
	"context"
	"fmt"
)

// RunStatus shows the current authentication state
func (c *Cli) RunStatus(ctx context.Context) error {
	fmt.Println("=== Session Status ===")
	fmt.Println()

	sess, err := c.sessions.Current()
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	if sess.Token == "" || sess.User == nil {
		fmt.Println("Status: Not authenticated")
		fmt.Println()
		fmt.Println("Run 'storefront login' to authenticate.")
		return nil
	}

	fmt.Println("Status: Authenticated")
	fmt.Printf("Username: %s\n", sess.User.Username)
	fmt.Printf("Email:    %s\n", sess.User.Email)
	if sess.User.Role == 1 {
		fmt.Println("Role:     administrator")
	}

	// The local blob may be stale; the server is authoritative.
	if _, err := c.apiClient.Me(ctx); err != nil {
		fmt.Println()
		fmt.Printf("⚠️  Session may have expired: %v\n", err)
		fmt.Println("Run 'storefront login' to re-authenticate.")
	}

	return nil
}
