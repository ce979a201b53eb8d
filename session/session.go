// Package session owns the process-wide authentication state: the in-memory
// access/refresh token pair, the current user, and the durable-storage mirror
// that carries tokens across restarts.
package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// User is the profile record returned by the remote service. The session layer
// treats it as opaque beyond existence.
type User struct {
	ID        string `json:"id,omitempty"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Verified  bool   `json:"verified,omitempty"`
}

// Store holds the session state. An access token being present is what makes
// the caller authenticated; the user record can lag behind, since its
// population is asynchronous.
//
// A nil Storage means persistence is unavailable (e.g. a server-rendering
// context): token writes then live in memory only.
type Store struct {
	lock    sync.RWMutex
	user    *User
	token   oauth2.Token
	storage Storage
}

// New creates an empty session store mirroring to storage. Pass nil storage
// when no durable storage exists in the execution context.
func New(storage Storage) *Store {
	return &Store{storage: storage}
}

// SetUser replaces the current user record.
func (s *Store) SetUser(user *User) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.user = user
}

// User returns the current user record, or nil.
func (s *Store) User() *User {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.user
}

// IsAuthenticated reports whether an access token is present.
func (s *Store) IsAuthenticated() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.token.AccessToken != ""
}

// AccessToken returns the current access token, or "".
func (s *Store) AccessToken() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.token.AccessToken
}

// RefreshToken returns the current refresh token, or "".
func (s *Store) RefreshToken() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.token.RefreshToken
}

// SetTokens adopts a new access token and mirrors it to durable storage.
// A nil refresh leaves both the in-memory and persisted refresh token
// untouched, since some flows rotate only the access token.
func (s *Store) SetTokens(ctx context.Context, access string, refresh *string) error {
	s.lock.Lock()
	s.token.AccessToken = access
	if refresh != nil {
		s.token.RefreshToken = *refresh
	}
	s.lock.Unlock()

	if s.storage == nil {
		return nil
	}

	if err := s.storage.Set(ctx, AccessTokenKey, access); err != nil {
		return errors.Wrap(err, "[Store.SetTokens] persist access token")
	}
	if refresh != nil {
		if err := s.storage.Set(ctx, RefreshTokenKey, *refresh); err != nil {
			return errors.Wrap(err, "[Store.SetTokens] persist refresh token")
		}
	}
	return nil
}

// ClearTokens drops both tokens from memory and durable storage. Tokens are
// always cleared together, never individually.
func (s *Store) ClearTokens(ctx context.Context) error {
	s.lock.Lock()
	s.token = oauth2.Token{}
	s.lock.Unlock()

	if s.storage == nil {
		return nil
	}

	if err := s.storage.Delete(ctx, AccessTokenKey); err != nil {
		return errors.Wrap(err, "[Store.ClearTokens] delete access token")
	}
	if err := s.storage.Delete(ctx, RefreshTokenKey); err != nil {
		return errors.Wrap(err, "[Store.ClearTokens] delete refresh token")
	}
	return nil
}

// SignOut clears tokens and the user record together.
func (s *Store) SignOut(ctx context.Context) error {
	s.lock.Lock()
	s.user = nil
	s.lock.Unlock()
	return s.ClearTokens(ctx)
}

// Restore adopts tokens persisted by a previous run. It reports true when an
// access token was found; the caller is then expected to validate the session
// by fetching the current user, and to clear the store if that fails.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	if s.storage == nil {
		return false, nil
	}

	access, err := s.storage.Get(ctx, AccessTokenKey)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "[Store.Restore] read access token")
	}

	refresh, err := s.storage.Get(ctx, RefreshTokenKey)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return false, errors.Wrap(err, "[Store.Restore] read refresh token")
	}

	s.lock.Lock()
	s.token.AccessToken = access
	s.token.RefreshToken = refresh
	s.lock.Unlock()

	return true, nil
}
