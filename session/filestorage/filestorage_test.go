package filestorage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/tipspace/go-auth-client/session"
	"github.com/tipspace/go-auth-client/session/filestorage"
)

func TestStorage(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.json")

	storage, err := filestorage.New(path)
	require.NoError(t, err)

	t.Run("missing key", func(t *testing.T) {
		_, err := storage.Get(ctx, session.AccessTokenKey)
		require.True(t, errors.Is(err, session.ErrNotFound))
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, storage.Set(ctx, session.AccessTokenKey, "access-1"))
		require.NoError(t, storage.Set(ctx, session.RefreshTokenKey, "refresh-1"))

		value, err := storage.Get(ctx, session.AccessTokenKey)
		require.NoError(t, err)
		require.Equal(t, "access-1", value)
	})

	t.Run("survives a new storage instance", func(t *testing.T) {
		reopened, err := filestorage.New(path)
		require.NoError(t, err)

		value, err := reopened.Get(ctx, session.RefreshTokenKey)
		require.NoError(t, err)
		require.Equal(t, "refresh-1", value)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, storage.Delete(ctx, session.AccessTokenKey))
		_, err := storage.Get(ctx, session.AccessTokenKey)
		require.True(t, errors.Is(err, session.ErrNotFound))

		// Deleting a missing key is not an error.
		require.NoError(t, storage.Delete(ctx, session.AccessTokenKey))
	})
}

func TestNew_RequiresPath(t *testing.T) {
	_, err := filestorage.New("")
	require.Error(t, err)
}
