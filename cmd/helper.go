package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/huh"

	"github.com/hyj0824/ojAssistant/client"
	"github.com/hyj0824/ojAssistant/internal/session"
	"github.com/hyj0824/ojAssistant/ui"
)

// loginAttempts bounds how often we re-prompt on rejected credentials.
const loginAttempts = 3

func newClient() (*client.Client, *session.Store, error) {
	c, err := client.New("", slog.Default())
	if err != nil {
		return nil, nil, err
	}
	path, err := session.DefaultPath()
	if err != nil {
		return nil, nil, err
	}
	return c, session.NewStore(path), nil
}

// ensureLogin makes the client usable: it tries the cached session
// first and falls back to an interactive CAS login when the cache is
// missing or expired.
func ensureLogin(c *client.Client, store *session.Store) error {
	if sess, ok := store.Load(); ok {
		c.SetSession(sess)
		if c.CheckSession() {
			ui.Successf("Using cached session")
			return nil
		}
		ui.Warnf("Cached session expired, logging in again")
	}
	return interactiveLogin(c, store)
}

// interactiveLogin prompts for CAS credentials and runs the OAuth flow,
// re-prompting only when the credentials themselves were rejected.
func interactiveLogin(c *client.Client, store *session.Store) error {
	for attempt := 1; attempt <= loginAttempts; attempt++ {
		username, password, err := promptCredentials()
		if err != nil {
			return fmt.Errorf("credential prompt failed: %w", err)
		}

		ui.Infof("Logging in through CAS...")
		sess, err := c.Login(username, password)
		if errors.Is(err, client.ErrBadCredentials) {
			ui.Errorf("Invalid username or password")
			continue
		}
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		if err := store.Save(sess); err != nil {
			// The session still works for this run.
			ui.Warnf("Could not save session cache: %v", err)
		}
		ui.Successf("Logged in successfully!")
		return nil
	}
	return fmt.Errorf("too many failed login attempts")
}

func promptCredentials() (string, string, error) {
	var username, password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("CAS username").
				Placeholder("12210000").
				Value(&username).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("username is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("CAS password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", "", err
	}
	return username, password, nil
}
