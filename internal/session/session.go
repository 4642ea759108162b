// Package session is the single owner of the bearer credential and the
// active site id. Every network call gets both injected from here instead of
// re-reading them ad hoc, so rotating the token or switching sites is one
// mutation in one place.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotAuthenticated is returned when no token is available. Callers treat
// it as "send the operator to login", not as a retryable failure.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// EnvToken and EnvSiteID override the persisted session when set.
const (
	EnvToken  = "SHOPCTL_TOKEN"
	EnvSiteID = "SHOPCTL_SITE_ID"
)

const fileName = "session.json"

// persisted is the on-disk shape under the config dir.
type persisted struct {
	Token  string `json:"token"`
	SiteID string `json:"siteId"`
}

// Session holds the live credential state for one client process.
type Session struct {
	mu     sync.RWMutex
	dir    string
	token  string
	siteID string
}

// Load reads the persisted session from configDir, applying env overrides.
// A missing file is not an error; the session just starts unauthenticated.
func Load(configDir string) (*Session, error) {
	s := &Session{dir: configDir}

	data, err := os.ReadFile(filepath.Join(configDir, fileName))
	switch {
	case err == nil:
		var p persisted
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("session: corrupt session file: %w", err)
		}
		s.token, s.siteID = p.Token, p.SiteID
	case os.IsNotExist(err):
		// fresh install
	default:
		return nil, fmt.Errorf("session: read session file: %w", err)
	}

	if v := os.Getenv(EnvToken); v != "" {
		s.token = v
	}
	if v := os.Getenv(EnvSiteID); v != "" {
		s.siteID = v
	}
	return s, nil
}

// Token returns the bearer token, or ErrNotAuthenticated when absent.
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", ErrNotAuthenticated
	}
	return s.token, nil
}

// SiteID returns the active site id; empty means the server default site.
func (s *Session) SiteID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.siteID
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	_, err := s.Token()
	return err == nil
}

// Set stores a new token and site id and persists them.
func (s *Session) Set(token, siteID string) error {
	s.mu.Lock()
	s.token, s.siteID = token, siteID
	s.mu.Unlock()
	return s.save()
}

// Clear drops the credential, e.g. after the server says it expired.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token, s.siteID = "", ""
	s.mu.Unlock()
	return s.save()
}

func (s *Session) save() error {
	s.mu.RLock()
	p := persisted{Token: s.token, SiteID: s.siteID}
	dir := s.dir
	s.mu.RUnlock()

	if dir == "" {
		return nil // ephemeral session (tests, env-only usage)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("session: create config dir: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	// 0600: the file holds a live credential.
	if err := os.WriteFile(filepath.Join(dir, fileName), data, 0600); err != nil {
		return fmt.Errorf("session: write session file: %w", err)
	}
	return nil
}
