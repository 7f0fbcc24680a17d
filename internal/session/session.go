// Package session persists the authenticated OJ session between runs.
//
// The cache is a flat text file with one key=value pair per line, matching
// what the platform keeps in its cookies: JCoderID identifies the server
// session and csrftoken signs state-changing requests.
package session

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	keySessionID = "JCoderID"
	keyCSRFToken = "csrftoken"
)

// Session holds the two tokens required for authenticated API calls.
// A session missing either token is never usable.
type Session struct {
	ID        string
	CSRFToken string
}

// Valid reports whether both tokens are present.
func (s Session) Valid() bool {
	return s.ID != "" && s.CSRFToken != ""
}

// Store reads and writes the session cache file.
type Store struct {
	Path string
}

// NewStore returns a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// DefaultPath places the cache under ~/.ojassistant.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".ojassistant", "session.txt"), nil
}

// Load reads the cached session. It returns ok=false if the file is
// missing, unreadable, or does not contain both tokens; a partial cache
// is treated the same as no cache at all.
func (st *Store) Load() (Session, bool) {
	f, err := os.Open(st.Path)
	if err != nil {
		return Session{}, false
	}
	defer func() { _ = f.Close() }()

	var sess Session
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case keySessionID:
			sess.ID = strings.TrimSpace(value)
		case keyCSRFToken:
			sess.CSRFToken = strings.TrimSpace(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return Session{}, false
	}
	if !sess.Valid() {
		return Session{}, false
	}
	return sess, true
}

// Save rewrites the cache file with the given session, creating parent
// directories as needed. Callers treat a save failure as non-fatal: the
// session still works for the current run, it just won't be reused.
func (st *Store) Save(sess Session) error {
	if !sess.Valid() {
		return fmt.Errorf("refusing to save incomplete session")
	}

	if dir := filepath.Dir(st.Path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	content := fmt.Sprintf("%s=%s\n%s=%s\n", keySessionID, sess.ID, keyCSRFToken, sess.CSRFToken)
	if err := os.WriteFile(st.Path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write session cache: %w", err)
	}
	return nil
}

// Clear removes the cache file. A missing file is not an error.
func (st *Store) Clear() error {
	if err := os.Remove(st.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session cache: %w", err)
	}
	return nil
}
