package oauthflow

import "errors"

var (
	// ErrMissingToken means the provider callback arrived without a token.
	ErrMissingToken = errors.New("no token received from OAuth provider")

	// ErrUserFetchFailed means the tokens were stored but the user record
	// could not be fetched with them.
	ErrUserFetchFailed = errors.New("failed to fetch user data")
)
