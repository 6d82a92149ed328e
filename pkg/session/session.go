// Package session holds the current authenticated identity for the process
// and persists it so a restart resumes the same session, the way the
// original browser client kept its token in local storage.
package session

import (
	"fmt"
	"sync"
	"time"

	"moviecat/pkg/domain"
)

// Data is the persisted session payload: the credential plus the identity
// it was issued for.
type Data struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Storage persists session state across process restarts.
type Storage interface {
	Save(Data) error
	// Load returns the stored session and whether one exists.
	Load() (Data, bool, error)
	Clear() error
}

// Store is the process-wide session cell. Absence of a session means
// unauthenticated; every predicate is derived from the cell, so none can
// desynchronize from it.
type Store struct {
	storage Storage

	mu      sync.RWMutex
	current *Data
}

// NewStore wraps the given persistence backend. Call Restore to rehydrate
// a previously saved session.
func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Restore loads a persisted session into the cell. Sessions whose token has
// already expired are discarded and wiped from storage.
func (s *Store) Restore() error {
	data, ok, err := s.storage.Load()
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !ok {
		return nil
	}
	if TokenExpired(data.Token, time.Now()) {
		return s.Clear()
	}
	s.mu.Lock()
	s.current = &data
	s.mu.Unlock()
	return nil
}

// Set installs a new session and persists it.
func (s *Store) Set(user domain.User, token string) error {
	data := Data{Token: token, User: user}
	if err := s.storage.Save(data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.mu.Lock()
	s.current = &data
	s.mu.Unlock()
	return nil
}

// Clear wipes both the cell and the persisted copy.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	if err := s.storage.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the signed-in user, if any.
func (s *Store) Current() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.User{}, false
	}
	return s.current.User, true
}

// Token returns the bearer credential, empty when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// IsAuthenticated reports whether a session is present.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// IsAdmin reports whether a session is present and carries the admin role.
// IsAdmin implies IsAuthenticated.
func (s *Store) IsAdmin() bool {
	user, ok := s.Current()
	return ok && user.Role == domain.RoleAdmin
}
