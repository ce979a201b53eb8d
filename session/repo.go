package session

import (
	"context"

	"github.com/pkg/errors"
)

// Durable storage keys. Presence of the access-token key is the sole signal
// that restoration should attempt re-authentication.
const (
	AccessTokenKey  = "authToken"
	RefreshTokenKey = "refreshToken"
)

// ErrNotFound is returned by Storage.Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// Storage is the durable key/value mirror the store persists tokens to.
// It is a passive mirror, never a source of truth once the process is running:
// when a persisted value and the in-memory value diverge, in-memory wins.
type Storage interface {
	// Set stores a value under key.
	Set(ctx context.Context, key, value string) error

	// Get retrieves the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}
