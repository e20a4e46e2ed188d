package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/juju/errors"
)

// Session is the admin's client-side state: the bearer token and an
// optional API override. It is loaded at start, saved on login and
// cleared on logout.
type Session struct {
	Token       string    `json:"token,omitempty"`
	LoggedIn    bool      `json:"loggedIn"`
	ExpiresAt   time.Time `json:"expiresAt,omitempty"`
	APIOverride string    `json:"apiUrl,omitempty"`

	path string
}

// DefaultSessionPath returns the session file under the user's config dir.
func DefaultSessionPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("portfolio-cms", "session.json"))
}

// LoadSession reads the session at path. A missing file is an empty,
// logged-out session.
func LoadSession(path string) (*Session, error) {
	s := &Session{path: path}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Annotatef(err, "reading session %s", path)
	}
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, errors.Annotatef(err, "parsing session %s", path)
	}
	return s, nil
}

// NewMemorySession returns a session that is never written to disk.
func NewMemorySession() *Session {
	return &Session{}
}

// IsLoggedIn reports whether a token is held.
func (s *Session) IsLoggedIn() bool {
	return s != nil && s.LoggedIn && s.Token != ""
}

// SetToken records a successful login.
func (s *Session) SetToken(token string, expiresAt time.Time) error {
	s.Token, s.ExpiresAt, s.LoggedIn = token, expiresAt, true
	return s.Save()
}

// Clear drops the credentials and keeps the API override.
func (s *Session) Clear() error {
	s.Token, s.ExpiresAt, s.LoggedIn = "", time.Time{}, false
	return s.Save()
}

// Save writes the session with owner-only permissions. Memory sessions
// are not persisted.
func (s *Session) Save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Annotate(err, "creating session dir")
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Trace(err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return errors.Annotatef(err, "writing session %s", s.path)
	}
	return nil
}
