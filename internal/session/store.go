// Package session persists the operator's identity across console restarts.
// The store is the only shared mutable state in the system: written by
// login/logout, read by every policy evaluation.
package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Pablo-Mora/gestion-activos/internal/directory"
	"github.com/Pablo-Mora/gestion-activos/internal/models"

	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store keeps the serialized identity in a single file; absence of the file
// means logged out.
type Store struct {
	path   string
	client *directory.Client

	mu sync.Mutex
}

// NewStore builds a store backed by the file at path. The parent directory
// is created on first write.
func NewStore(path string, client *directory.Client) *Store {
	return &Store{path: path, client: client}
}

// DefaultPath places the session record under the user's config directory,
// falling back to the working directory when none is available.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(dir, "gestion-activos", "session.json")
}

// Current returns the stored identity, or nil when logged out. A stored
// identity whose bearer token has expired is discarded: the backend would
// reject it anyway, so the operator is forced back through login.
func (s *Store) Current() *models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return nil
	}
	if len(identity.Roles) == 0 {
		return nil
	}
	if tokenExpired(identity.Token) {
		_ = os.Remove(s.path)
		return nil
	}
	return &identity
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	if identity := s.Current(); identity != nil {
		return identity.Token
	}
	return ""
}

// Set persists the identity, replacing any previous one.
func (s *Store) Set(identity *models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(identity)
	if err != nil {
		return errors.Wrap(err, "serialize identity")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "create session dir")
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return errors.Wrap(err, "write session")
	}
	return nil
}

// Clear logs out by removing the stored record.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "clear session")
	}
	return nil
}

// Login authenticates against the backend and, on success, persists the
// returned identity. Failures pass through untouched so the login form can
// show the backend's message.
func (s *Store) Login(ctx context.Context, username, password string) (*models.Identity, error) {
	identity, err := s.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := s.Set(identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// tokenExpired peeks at the token's exp claim without verifying the
// signature; verification is the backend's job. Tokens that do not parse as
// JWTs are assumed opaque and left to the backend to judge.
func tokenExpired(token string) bool {
	if token == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
