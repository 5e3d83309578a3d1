// Package cli implements the storefront client commands.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/avolkov/storefront/internal/client/api"
	"github.com/avolkov/storefront/internal/client/session"
)

// Cli bundles the API client and the session manager used by the commands
type Cli struct {
	apiClient *api.Client
	sessions  *session.Manager
}

// New creates a new Cli
func New(apiClient *api.Client, sessions *session.Manager) *Cli {
	return &Cli{
		apiClient: apiClient,
		sessions:  sessions,
	}
}

// PrintUsage prints the command summary
func PrintUsage() {
	fmt.Println("Usage: storefront <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register              Create a new account")
	fmt.Println("  login                 Sign in and save the session")
	fmt.Println("  logout                Sign out and clear the session")
	fmt.Println("  status                Show authentication status")
	fmt.Println("  categories            List catalog categories")
	fmt.Println("  products [category]   List catalog products")
	fmt.Println("  order <product> <qty> [...]  Place an order")
	fmt.Println("  orders                List your orders")
}

// readInput reads a line from stdin
func readInput(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads a password without echoing it
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(passwordBytes), nil
}
