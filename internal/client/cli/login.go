package cli

import (
	"context"
	"fmt"

	"github.com/avolkov/storefront/internal/client/session"
	"github.com/avolkov/storefront/pkg/api"
)

// RunLogin signs in and persists the session
func (c *Cli) RunLogin(ctx context.Context) error {
	fmt.Println("=== Login ===")
	fmt.Println()

	username, err := readInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	resp, err := c.apiClient.Login(ctx, api.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return err
	}

	user := resp.User
	if err := c.sessions.Set(ctx, session.Session{User: &user, Token: resp.Token}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Println()
	fmt.Printf("✓ Logged in as %s\n", user.Username)
	fmt.Printf("Session token expires in %d seconds\n", resp.ExpiresIn)

	return nil
}
