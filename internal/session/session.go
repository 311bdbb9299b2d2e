// Package session persists the authenticated user between runs, the
// way the web client keeps its single "user" record in local storage.
// The file is replaced wholesale on login and profile updates; every
// other consumer only reads it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/markoswell/optivest/internal/user"
)

var ErrNotLoggedIn = errors.New("session: not logged in")

// Session is the current user plus their access token.
type Session struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

// IsAdmin reports whether the session may enter the admin back office.
func (s *Session) IsAdmin() bool {
	return s.User != nil && s.User.Role == user.RoleAdmin
}

// Expired reports whether the access token's exp claim has passed.
// The token is decoded without verification; only the server holds the
// signing key, and it re-checks every request anyway. Tokens that
// cannot be decoded count as expired so the user is sent back to the
// login screen rather than left with a dead session.
func (s *Session) Expired(now time.Time) bool {
	if s.Token == "" {
		return true
	}

	var claims jwt.RegisteredClaims

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.Token, &claims); err != nil {
		return true
	}

	if claims.ExpiresAt == nil {
		return false
	}

	return claims.ExpiresAt.Before(now)
}

// Store reads and replaces the session file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the saved session, or ErrNotLoggedIn when none exists.
func (st *Store) Load() (*Session, error) {
	raw, err := os.ReadFile(st.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotLoggedIn
		}

		return nil, fmt.Errorf("reading session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}

	if s.User == nil {
		return nil, ErrNotLoggedIn
	}

	return &s, nil
}

// Save replaces the stored session.
func (st *Store) Save(s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(st.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	if err := os.WriteFile(st.path, raw, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}

	return nil
}

// Clear removes the stored session. Clearing an absent session is not
// an error.
func (st *Store) Clear() error {
	if err := os.Remove(st.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}

	return nil
}
