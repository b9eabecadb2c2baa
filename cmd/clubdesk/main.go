package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openclubhq/clubdesk/internal/access"
	"github.com/openclubhq/clubdesk/internal/browser"
	"github.com/openclubhq/clubdesk/internal/tui"
	"github.com/openclubhq/clubdesk/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// tokenFilePath returns ~/.clubdesk/token.
func tokenFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".clubdesk", "token"), nil
}

// readToken returns the auth token using precedence: env var > file > empty.
func readToken() string {
	if tok := os.Getenv("CLUBDESK_TOKEN"); tok != "" {
		return tok
	}
	path, err := tokenFilePath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// saveToken persists the session token to ~/.clubdesk/token.
func saveToken(token string) error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create ~/.clubdesk dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(token), 0600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// clearToken removes the persisted token, if any.
func clearToken() error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

func run() error {
	apiURL := os.Getenv("CLUBDESK_API_URL")
	if apiURL == "" {
		apiURL = "https://api.openclub.app"
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("clubdesk " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "docs":
			return openSite("docs")
		case "terms":
			return openSite("terms")
		case "privacy":
			return openSite("privacy")
		case "logout":
			return runLogout()
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
			printHelp()
			return nil
		}
	}

	api := client.New(apiURL, readToken())
	provider := access.NewAPIProvider(api, saveToken, clearToken)
	sessions := access.NewSessionManager(provider)
	entitlements := access.NewEntitlementManager(provider, sessions)
	guard := access.NewGuard(sessions, "/login")

	app := tui.NewApp(tui.Config{
		API:          api,
		Sessions:     sessions,
		Entitlements: entitlements,
		Guard:        guard,
		SaveToken:    saveToken,
		Version:      version,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())

	// Manager notifications arrive on command goroutines; feed them back into
	// the program loop so views re-render and the guard re-evaluates.
	sessions.Subscribe(func() {
		p.Send(tui.StateChangedMsg{})
	})
	entitlements.Subscribe(func() {
		p.Send(tui.StateChangedMsg{})
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogout() error {
	tokPath, err := tokenFilePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(tokPath); os.IsNotExist(err) {
		fmt.Println("Already logged out.")
		return nil
	}
	if err := os.Remove(tokPath); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}

func openSite(page string) error {
	url := "https://openclub.app/" + page
	if err := browser.Open(url); err != nil {
		fmt.Println(url)
	}
	return nil
}

func printHelp() {
	fmt.Print(helpText)
}

const helpText = `clubdesk — terminal client for your club

usage:
  clubdesk            launch the app
  clubdesk logout     remove the saved session token
  clubdesk docs       open the documentation in a browser
  clubdesk terms      open the terms of service
  clubdesk privacy    open the privacy policy
  clubdesk version    print the version

environment:
  CLUBDESK_API_URL    override the API endpoint
  CLUBDESK_TOKEN      session token (overrides ~/.clubdesk/token)
`
