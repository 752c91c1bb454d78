// Package credstore owns the durable bearer credential. The credential is
// a single JSON record on disk (userData.json); nothing else is persisted
// across runs.
package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quizdesk/quizdesk/internal/model"
)

// Store holds the credential in memory and mirrors it to disk.
// Readers never see a partially written record and a corrupt record is
// treated as unauthenticated rather than an error.
type Store struct {
	mu   sync.Mutex
	path string
	cred *model.Credential
}

// New creates a Store backed by the record at path. The record is not
// read until Load is called.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the credential record from disk. A missing, unreadable, or
// corrupt record yields nil; Load never fails.
func (s *Store) Load() *model.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		s.cred = nil
		return nil
	}

	var cred model.Credential
	if err := json.Unmarshal(b, &cred); err != nil || !cred.Valid() {
		s.cred = nil
		return nil
	}

	s.cred = &cred
	return &cred
}

// Save stores the credential in memory and on disk.
func (s *Store) Save(cred *model.Credential) error {
	if !cred.Valid() {
		return fmt.Errorf("refusing to save invalid credential")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cred = cred

	b, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

// Clear drops the credential from memory and disk. Used on logout and on
// any 401 from the request pipeline.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cred = nil
	// A missing file is already the cleared state.
	_ = os.Remove(s.path)
}

// Get returns the in-memory credential, nil when unauthenticated.
func (s *Store) Get() *model.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred
}

// Token returns the bearer token, empty when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return ""
	}
	return s.cred.AccessToken
}

// Role returns the stored role, empty when unauthenticated.
func (s *Store) Role() model.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return ""
	}
	return s.cred.Profile.Role
}

// TokenExpired peeks at the access token's exp claim without verifying
// the signature. Advisory only: the server remains authoritative and an
// opaque or claimless token is reported as not expired.
func (s *Store) TokenExpired(now time.Time) bool {
	token := s.Token()
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
