// Package session persists the client's access token. The store is a
// single slot: one opaque string in one file. Presence of a token is what
// the rest of the client treats as "authenticated".
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store reads and writes the token file. Reads are frequent (every request
// and every guard check); writes happen only on login and logout, each an
// atomic replace of the whole file.
type Store struct {
	path string
}

// NewStore builds a Store over the given token file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the token file location.
func (s *Store) Path() string { return s.path }

// Get returns the stored token, or "" when none is present. Read errors
// other than absence are treated as "no token"; the guard and the HTTP
// layer only care about presence.
func (s *Store) Get() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Set stores the token, creating parent directories as needed. The write
// goes to a temp file first and is moved into place so a concurrent Get
// never sees a partial token.
func (s *Store) Set(token string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("session: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("session: create temp file: %w", err)
	}
	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("session: write token: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("session: close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("session: chmod token file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("session: replace token file: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: clear token: %w", err)
	}
	return nil
}
