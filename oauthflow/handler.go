// Package oauthflow drives the provider-redirect login flow: it initiates the
// redirect to the provider's authorization page and completes the flow when
// the provider calls back with tokens.
package oauthflow

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/tipspace/go-auth-client/api"
	"github.com/tipspace/go-auth-client/authclient"
	"github.com/tipspace/go-auth-client/internal/utils"
	"github.com/tipspace/go-auth-client/routing"
	"github.com/tipspace/go-auth-client/session"
)

// Provider names an OAuth provider the remote service supports.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderGithub Provider = "github"
)

// authorizeData is the success payload of the provider authorize-URL endpoint.
type authorizeData struct {
	URL string `json:"url,omitempty"`
}

// Handler implements the OAuth redirect flow. A nil Navigator marks a server
// execution context: Initiate becomes a no-op there, since a full-page
// redirect only exists client-side.
type Handler struct {
	api     api.Doer
	session *session.Store
	client  *authclient.Client
	nav     routing.Navigator
	origin  string
	log     zerolog.Logger
}

// HandlerOption modifies a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(logger zerolog.Logger) HandlerOption {
	return func(h *Handler) {
		h.log = logger
	}
}

// New creates an OAuth flow handler. origin is the client's own origin, used
// to build the default callback redirect URI.
func New(doer api.Doer, store *session.Store, client *authclient.Client, nav routing.Navigator, origin string, options ...HandlerOption) (*Handler, error) {
	if doer == nil {
		return nil, errors.New("[oauthflow.New] api doer is required")
	}
	if store == nil {
		return nil, errors.New("[oauthflow.New] session store is required")
	}
	if client == nil {
		return nil, errors.New("[oauthflow.New] auth client is required")
	}

	handler := &Handler{
		api:     doer,
		session: store,
		client:  client,
		nav:     nav,
		origin:  origin,
		log:     zerolog.Nop(),
	}

	for _, opt := range options {
		opt(handler)
	}

	return handler, nil
}

// Initiate fetches the provider's authorization URL from the remote service
// and performs a full-page redirect to it. The redirect URI defaults to
// <origin>/auth/callback when the caller supplies none. Server-side it is a
// no-op.
func (h *Handler) Initiate(ctx context.Context, provider Provider, customRedirectURI string) error {
	if h.nav == nil {
		return nil
	}

	redirectURI := customRedirectURI
	if redirectURI == "" {
		redirectURI = h.origin + routing.RouteOAuthCallback
	}

	env, err := api.Call[authorizeData](ctx, h.api, api.Request{
		Method: http.MethodGet,
		Path:   api.RouteOAuthProvider + string(provider),
		Query:  url.Values{"redirect_uri": {redirectURI}},
	})
	if err != nil {
		return wrapFailure(err, "Failed to initiate "+string(provider)+" login")
	}

	if !env.Success || env.Data == nil || env.Data.URL == "" {
		return invalidResponse(env.Message)
	}

	h.log.Debug().Str("provider", string(provider)).Msg("redirecting to provider")
	h.nav.NavigateExternal(env.Data.URL)
	return nil
}

// CompleteCallback finishes the flow once the provider has called back with
// tokens. It stores the token pair, validates it by fetching the current
// user, and then redirects: to redirectURI with the tokens appended as query
// parameters when an external caller supplied one, else to the account page.
//
// The store write is synchronous, so the user fetch needs no settle delay
// before it sees the new tokens.
func (h *Handler) CompleteCallback(ctx context.Context, accessToken, refreshToken, redirectURI string) error {
	if accessToken == "" {
		return ErrMissingToken
	}

	var refresh *string
	if refreshToken != "" {
		refresh = utils.Ptr(refreshToken)
	}
	if err := h.session.SetTokens(ctx, accessToken, refresh); err != nil {
		return errors.Wrap(err, "[Handler.CompleteCallback] store tokens")
	}

	user, err := h.client.FetchCurrentUser(ctx)
	if err != nil {
		return errors.Wrap(err, ErrUserFetchFailed.Error())
	}
	if user == nil {
		return ErrUserFetchFailed
	}

	if h.nav == nil {
		return nil
	}

	if redirectURI != "" {
		target, err := url.Parse(redirectURI)
		if err != nil {
			return errors.Wrap(err, "[Handler.CompleteCallback] parse redirect URI")
		}
		query := target.Query()
		query.Set("token", accessToken)
		query.Set("refresh_token", refreshToken)
		target.RawQuery = query.Encode()
		h.nav.NavigateExternal(target.String())
		return nil
	}

	h.nav.NavigateTo(routing.RouteAccount)
	return nil
}

func wrapFailure(err error, fallback string) error {
	if detail := api.Detail(err); detail != "" {
		return errors.Wrap(err, detail)
	}
	return errors.Wrap(err, fallback)
}

func invalidResponse(message string) error {
	if message != "" {
		return errors.Wrap(authclient.ErrInvalidResponse, message)
	}
	return authclient.ErrInvalidResponse
}
