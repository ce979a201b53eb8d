// Package authclient performs the session lifecycle operations against the
// remote auth service: login, registration, logout, password reset,
// verification resend, current-user fetch, and the single-retry refresh
// recovery that keeps an expired access token invisible to callers.
package authclient

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/tipspace/go-auth-client/api"
	"github.com/tipspace/go-auth-client/internal/utils"
	"github.com/tipspace/go-auth-client/session"
	"github.com/tipspace/go-auth-client/token"
)

// Client drives the remote auth endpoints and mutates the session store on
// every successful credential exchange. Callers are expected to drive a Client
// from a single goroutine, matching the event-driven environment it models.
type Client struct {
	api              api.Doer
	session          *session.Store
	refresher        *coordinator
	log              zerolog.Logger
	proactiveRefresh bool
}

// Option modifies a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.log = logger
	}
}

// WithProactiveRefresh makes authenticated calls refresh an already-expired
// access token up front instead of waiting for the 401 round trip.
func WithProactiveRefresh() Option {
	return func(c *Client) {
		c.proactiveRefresh = true
	}
}

// New creates a session client over the given transport and store.
func New(doer api.Doer, store *session.Store, options ...Option) (*Client, error) {
	if doer == nil {
		return nil, errors.New("[authclient.New] api doer is required")
	}
	if store == nil {
		return nil, errors.New("[authclient.New] session store is required")
	}

	client := &Client{
		api:     doer,
		session: store,
		log:     zerolog.Nop(),
	}
	client.refresher = newCoordinator(client)

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// Login exchanges credentials for a token pair and the user record. The store
// is only mutated on a well-formed success envelope.
func (c *Client) Login(ctx context.Context, email, password string) (*session.User, error) {
	env, err := api.Call[loginData](ctx, c.api, api.Request{
		Method: http.MethodPost,
		Path:   api.RouteLogin,
		Body:   credentialsBody{Email: email, Password: password},
	})
	if err != nil {
		return nil, wrapFailure(err, "Login failed")
	}

	if !env.Success || env.Data == nil || env.Data.Token == "" {
		return nil, invalidResponse(env.Message)
	}

	var refresh *string
	if env.Data.RefreshToken != "" {
		refresh = utils.Ptr(env.Data.RefreshToken)
	}
	if err := c.session.SetTokens(ctx, env.Data.Token, refresh); err != nil {
		return nil, errors.Wrap(err, "[Client.Login] store tokens")
	}
	c.session.SetUser(env.Data.User)

	return env.Data.User, nil
}

// Register submits a sign-up request. It is a pure pass-through: no local
// state changes regardless of outcome.
func (c *Client) Register(ctx context.Context, data Registration) (*session.User, error) {
	env, err := api.Call[session.User](ctx, c.api, api.Request{
		Method: http.MethodPost,
		Path:   api.RouteRegister,
		Body:   data,
	})
	if err != nil {
		return nil, wrapFailure(err, "Registration failed")
	}
	return env.Data, nil
}

// RequestPasswordReset asks the service to send a reset token to email.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := api.Call[string](ctx, c.api, api.Request{
		Method: http.MethodPost,
		Path:   api.RouteRequestPwdReset,
		Body:   passwordResetRequestBody{Email: email},
	})
	if err != nil {
		return wrapFailure(err, "Password reset request failed")
	}
	return nil
}

// ResetPassword redeems a reset token for a new password.
func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	_, err := api.Call[session.User](ctx, c.api, api.Request{
		Method: http.MethodPost,
		Path:   api.RouteResetPassword,
		Body:   passwordResetBody{Token: resetToken, NewPassword: newPassword},
	})
	if err != nil {
		return wrapFailure(err, "Password reset failed")
	}
	return nil
}

// ResendVerificationEmail asks the service to re-send the address-verification
// mail for the signed-in user.
func (c *Client) ResendVerificationEmail(ctx context.Context) error {
	if c.session.AccessToken() == "" {
		return ErrNotAuthenticated
	}
	if err := c.ensureFreshToken(ctx); err != nil {
		return err
	}

	_, err := api.Call[string](ctx, c.api, api.Request{
		Method:      http.MethodPost,
		Path:        api.RouteResendVerifyMail,
		BearerToken: c.session.AccessToken(),
	})
	if err != nil {
		return wrapFailure(err, "Failed to resend verification email")
	}
	return nil
}

// FetchCurrentUser loads the signed-in user's profile and caches it in the
// store. Without an access token it returns nil immediately. A 401 is routed
// through the refresh coordinator, so an expired-but-refreshable token is
// invisible to the caller.
func (c *Client) FetchCurrentUser(ctx context.Context) (*session.User, error) {
	if c.session.AccessToken() == "" {
		return nil, nil
	}
	if err := c.ensureFreshToken(ctx); err != nil {
		return nil, err
	}

	var user *session.User
	err := c.refresher.Execute(ctx, func(ctx context.Context) error {
		fetched, err := c.fetchCurrentUserOnce(ctx)
		if err != nil {
			return err
		}
		user = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) fetchCurrentUserOnce(ctx context.Context) (*session.User, error) {
	env, err := api.Call[session.User](ctx, c.api, api.Request{
		Method:      http.MethodGet,
		Path:        api.RouteCurrentUser,
		BearerToken: c.session.AccessToken(),
	})
	if err != nil {
		return nil, wrapFailure(err, "Failed to fetch user data")
	}

	if env.Success && env.Data != nil {
		c.session.SetUser(env.Data)
		return env.Data, nil
	}
	return nil, nil
}

// RefreshAccessToken redeems the refresh token for a new access token. The
// refresh token itself stays in place. A failing refresh call forces a full
// local sign-out before the error is surfaced, so stale unusable tokens never
// linger.
func (c *Client) RefreshAccessToken(ctx context.Context) error {
	refresh := c.session.RefreshToken()
	if refresh == "" {
		return ErrNoRefreshToken
	}

	env, err := api.Call[refreshData](ctx, c.api, api.Request{
		Method: http.MethodPost,
		Path:   api.RouteRefresh,
		Body:   refreshBody{RefreshToken: refresh},
	})
	if err != nil {
		if signOutErr := c.session.SignOut(ctx); signOutErr != nil {
			c.log.Warn().Err(signOutErr).Msg("sign-out after failed refresh")
		}
		return wrapFailure(err, "Token refresh failed")
	}

	if !env.Success || env.Data == nil || env.Data.Token == "" {
		return invalidResponse(env.Message)
	}

	// Refresh token unchanged: nil leaves the stored one in place.
	if err := c.session.SetTokens(ctx, env.Data.Token, nil); err != nil {
		return errors.Wrap(err, "[Client.RefreshAccessToken] store token")
	}
	return nil
}

// Logout notifies the service best-effort, then clears all local session
// state. A failing remote call is logged and swallowed: local sign-out must
// always succeed. Without a full token pair there is nothing to do.
func (c *Client) Logout(ctx context.Context) error {
	access := c.session.AccessToken()
	refresh := c.session.RefreshToken()
	if access == "" || refresh == "" {
		return nil
	}

	_, err := api.Call[string](ctx, c.api, api.Request{
		Method:      http.MethodPost,
		Path:        api.RouteLogout,
		Body:        refreshBody{RefreshToken: refresh},
		BearerToken: access,
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("remote logout failed")
	}

	if err := c.session.SignOut(ctx); err != nil {
		return errors.Wrap(err, "[Client.Logout] sign out")
	}
	return nil
}

// Restore adopts tokens persisted by a previous run and validates them by
// fetching the current user. An invalid persisted session is cleared rather
// than left half-authenticated; restoration failure means signed-out, not an
// error.
func (c *Client) Restore(ctx context.Context) error {
	adopted, err := c.session.Restore(ctx)
	if err != nil {
		return errors.Wrap(err, "[Client.Restore] restore tokens")
	}
	if !adopted {
		return nil
	}

	if _, err := c.FetchCurrentUser(ctx); err != nil {
		c.log.Warn().Err(err).Msg("restored session invalid, clearing tokens")
		if clearErr := c.session.ClearTokens(ctx); clearErr != nil {
			return errors.Wrap(clearErr, "[Client.Restore] clear tokens")
		}
	}
	return nil
}

// ensureFreshToken refreshes up front when the current access token has
// already expired and a refresh token exists. Without proactive refresh
// enabled, recovery stays on the 401 path.
func (c *Client) ensureFreshToken(ctx context.Context) error {
	if !c.proactiveRefresh {
		return nil
	}
	access := c.session.AccessToken()
	if access == "" || !token.Expired(access) || c.session.RefreshToken() == "" {
		return nil
	}
	return c.RefreshAccessToken(ctx)
}

// wrapFailure surfaces a failed call with the classifier's most specific
// message, falling back to the operation's generic one.
func wrapFailure(err error, fallback string) error {
	if detail := api.Detail(err); detail != "" {
		return errors.Wrap(err, detail)
	}
	return errors.Wrap(err, fallback)
}

// invalidResponse raises ErrInvalidResponse, keeping any envelope message.
func invalidResponse(message string) error {
	if message != "" {
		return errors.Wrap(ErrInvalidResponse, message)
	}
	return ErrInvalidResponse
}
