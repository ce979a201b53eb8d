package routing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tipspace/go-auth-client/routing"
	"github.com/tipspace/go-auth-client/session"
)

func TestGuard_Check(t *testing.T) {
	ctx := context.Background()

	authenticated := func(t *testing.T) *routing.Guard {
		t.Helper()
		store := session.New(nil)
		require.NoError(t, store.SetTokens(ctx, "access-1", nil))
		return routing.NewGuard(store)
	}
	anonymous := func(t *testing.T) *routing.Guard {
		t.Helper()
		return routing.NewGuard(session.New(nil))
	}

	t.Run("unauthenticated to protected page redirects to login", func(t *testing.T) {
		target := anonymous(t).Check("/account")
		require.Equal(t, "/auth/login?redirect=%2Faccount", target)
	})

	t.Run("unauthenticated to auth page is allowed", func(t *testing.T) {
		require.Equal(t, "", anonymous(t).Check(routing.RouteLogin))
	})

	t.Run("authenticated to auth page redirects to landing", func(t *testing.T) {
		require.Equal(t, routing.RouteLanding, authenticated(t).Check(routing.RouteLogin))
	})

	t.Run("authenticated to logout is allowed", func(t *testing.T) {
		require.Equal(t, "", authenticated(t).Check(routing.RouteLogout))
	})

	t.Run("authenticated to protected page is allowed", func(t *testing.T) {
		require.Equal(t, "", authenticated(t).Check("/account"))
	})

	t.Run("authenticated to landing is allowed", func(t *testing.T) {
		require.Equal(t, "", authenticated(t).Check(routing.RouteLanding))
	})
}
