package authclient_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/tipspace/go-auth-client/api"
	"github.com/tipspace/go-auth-client/api/apifake"
	"github.com/tipspace/go-auth-client/authclient"
	"github.com/tipspace/go-auth-client/session"
	"github.com/tipspace/go-auth-client/token"
)

func refreshSuccessBody(t *testing.T, newToken string) []byte {
	t.Helper()
	return envelope(t, true, map[string]any{"token": newToken}, "")
}

func userSuccessBody(t *testing.T) []byte {
	t.Helper()
	return envelope(t, true, map[string]any{"id": testUserID, "email": testUserEmail}, "")
}

func TestRefreshRecovery(t *testing.T) {
	ctx := context.Background()

	t.Run("401 triggers exactly one refresh and one retry", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.store.SetTokens(ctx, "expired-access", ptr(testRefresh)))

		f.doer.Script(http.MethodGet, api.RouteCurrentUser, apifake.Response{Err: &api.Error{StatusCode: 401}})
		f.doer.Script(http.MethodGet, api.RouteCurrentUser, apifake.Response{Body: userSuccessBody(t)})
		f.doer.Script(http.MethodPost, api.RouteRefresh, apifake.Response{Body: refreshSuccessBody(t, "fresh-access")})

		user, err := f.client.FetchCurrentUser(ctx)
		require.NoError(t, err)
		require.NotNil(t, user)

		require.Equal(t, 2, f.doer.CallCount(http.MethodGet, api.RouteCurrentUser))
		require.Equal(t, 1, f.doer.CallCount(http.MethodPost, api.RouteRefresh))

		// New access token adopted, refresh token untouched.
		require.Equal(t, "fresh-access", f.store.AccessToken())
		require.Equal(t, testRefresh, f.store.RefreshToken())

		// The retry went out with the fresh token.
		requests := f.doer.Requests()
		last := requests[len(requests)-1]
		require.Equal(t, api.RouteCurrentUser, last.Path)
		require.Equal(t, "fresh-access", last.BearerToken)
	})

	t.Run("second 401 on retry signs out with no further retries", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.store.SetTokens(ctx, "expired-access", ptr(testRefresh)))

		f.doer.Script(http.MethodGet, api.RouteCurrentUser, apifake.Response{Err: &api.Error{StatusCode: 401}})
		f.doer.Script(http.MethodGet, api.RouteCurrentUser, apifake.Response{Err: &api.Error{StatusCode: 401}})
		f.doer.Script(http.MethodPost, api.RouteRefresh, apifake.Response{Body: refreshSuccessBody(t, "fresh-access")})

		_, err := f.client.FetchCurrentUser(ctx)
		require.Error(t, err)

		require.Equal(t, 2, f.doer.CallCount(http.MethodGet, api.RouteCurrentUser))
		require.Equal(t, 1, f.doer.CallCount(http.MethodPost, api.RouteRefresh))
		require.False(t, f.store.IsAuthenticated())
		require.False(t, f.storage.Has(session.AccessTokenKey))
	})

	t.Run("failing refresh call signs out and raises the refresh error", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.store.SetTokens(ctx, "expired-access", ptr("dead-refresh")))

		f.doer.Script(http.MethodGet, api.RouteCurrentUser, apifake.Response{Err: &api.Error{StatusCode: 401}})
		f.doer.Script(http.MethodPost, api.RouteRefresh, apifake.Response{
			Err: &api.Error{StatusCode: 401, Message: "refresh token revoked"},
		})

		_, err := f.client.FetchCurrentUser(ctx)
		require.Error(t, err)
		require.Contains(t, err.Error(), "refresh token revoked")

		require.Equal(t, 1, f.doer.CallCount(http.MethodGet, api.RouteCurrentUser))
		require.Equal(t, 1, f.doer.CallCount(http.MethodPost, api.RouteRefresh))
		require.False(t, f.store.IsAuthenticated())
	})

	t.Run("401 without a refresh token fails fast and clears the store", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.store.SetTokens(ctx, "stale-access", nil))

		f.doer.Script(http.MethodGet, api.RouteCurrentUser, apifake.Response{Err: &api.Error{StatusCode: 401}})

		_, err := f.client.FetchCurrentUser(ctx)
		require.True(t, errors.Is(err, authclient.ErrNoRefreshToken))
		require.Equal(t, 0, f.doer.CallCount(http.MethodPost, api.RouteRefresh))
		require.False(t, f.store.IsAuthenticated())
	})
}

func TestClient_RefreshAccessToken(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a refresh token", func(t *testing.T) {
		f := setupTestFixture(t)
		err := f.client.RefreshAccessToken(ctx)
		require.True(t, errors.Is(err, authclient.ErrNoRefreshToken))
	})

	t.Run("malformed success envelope raises invalid response", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.store.SetTokens(ctx, testAccess, ptr(testRefresh)))
		f.doer.Script(http.MethodPost, api.RouteRefresh, apifake.Response{Body: envelope(t, true, nil, "")})

		err := f.client.RefreshAccessToken(ctx)
		require.True(t, errors.Is(err, authclient.ErrInvalidResponse))
	})

	t.Run("transport failure signs out before raising", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.store.SetTokens(ctx, testAccess, ptr(testRefresh)))
		f.store.SetUser(&session.User{ID: testUserID})
		f.doer.Script(http.MethodPost, api.RouteRefresh, apifake.Response{Err: errors.New("network down")})

		err := f.client.RefreshAccessToken(ctx)
		require.Error(t, err)
		require.False(t, f.store.IsAuthenticated())
		require.Nil(t, f.store.User())
	})
}

func TestProactiveRefresh(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	token.NowTimeFunc = func() time.Time { return now }
	t.Cleanup(func() { token.NowTimeFunc = time.Now })

	expiredJWT := func(t *testing.T) string {
		t.Helper()
		raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
			"sub": testUserID,
			"exp": now.Add(-time.Minute).Unix(),
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return raw
	}

	t.Run("expired token refreshes before the call", func(t *testing.T) {
		f := setupTestFixture(t, authclient.WithProactiveRefresh())
		require.NoError(t, f.store.SetTokens(ctx, expiredJWT(t), ptr(testRefresh)))

		f.doer.Script(http.MethodPost, api.RouteRefresh, apifake.Response{Body: refreshSuccessBody(t, "fresh-access")})
		f.doer.Script(http.MethodGet, api.RouteCurrentUser, apifake.Response{Body: userSuccessBody(t)})

		user, err := f.client.FetchCurrentUser(ctx)
		require.NoError(t, err)
		require.NotNil(t, user)

		requests := f.doer.Requests()
		require.Len(t, requests, 2)
		require.Equal(t, api.RouteRefresh, requests[0].Path)
		require.Equal(t, "fresh-access", requests[1].BearerToken)
	})

	t.Run("disabled by default", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.store.SetTokens(ctx, expiredJWT(t), ptr(testRefresh)))
		f.doer.Script(http.MethodGet, api.RouteCurrentUser, apifake.Response{Body: userSuccessBody(t)})

		_, err := f.client.FetchCurrentUser(ctx)
		require.NoError(t, err)
		require.Equal(t, 0, f.doer.CallCount(http.MethodPost, api.RouteRefresh))
	})
}
