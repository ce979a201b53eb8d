package authclient

import "errors"

var (
	// ErrInvalidResponse means the envelope reported success but the expected
	// payload fields were absent.
	ErrInvalidResponse = errors.New("invalid response from server")

	// ErrNotAuthenticated means the operation requires an access token and
	// none is present.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoRefreshToken means a refresh was attempted without a refresh token.
	ErrNoRefreshToken = errors.New("no refresh token available")
)
