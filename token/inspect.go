// Package token inspects access tokens client-side. It reads claims without
// verifying signatures: verification belongs to the issuing service, the
// client only needs the expiry to decide when a refresh is worthwhile.
package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// ExpiresAt extracts the expiry claim from a JWT access token without
// verifying it.
func ExpiresAt(rawToken string) (time.Time, error) {
	if strings.TrimSpace(rawToken) == "" {
		return time.Time{}, errors.New("[token.ExpiresAt] empty token")
	}

	unverified, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return time.Time{}, errors.Wrap(err, "[token.ExpiresAt] parse token")
	}

	exp, err := unverified.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, errors.Wrap(err, "[token.ExpiresAt] expiration claim")
	}
	if exp == nil {
		return time.Time{}, errors.New("[token.ExpiresAt] no expiration claim")
	}
	return exp.Time, nil
}

// Expired reports whether the token's expiry claim has passed. Tokens without
// a readable expiry are treated as live; an actually dead token still fails
// with a 401 and recovers through the refresh path.
func Expired(rawToken string) bool {
	exp, err := ExpiresAt(rawToken)
	if err != nil {
		return false
	}
	return NowTimeFunc().After(exp)
}
