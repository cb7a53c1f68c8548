package authguard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rolekit/pkg/authguard"
)

func newTestGuard(t *testing.T, limit int) *authguard.Guard {
	t.Helper()
	g, err := authguard.New(authguard.NewMemoryStore(), authguard.Config{
		Limit:  limit,
		Window: time.Minute,
	})
	require.NoError(t, err)
	return g
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil store", func(t *testing.T) {
		t.Parallel()
		_, err := authguard.New(nil, authguard.Config{Limit: 3, Window: time.Minute})
		require.ErrorIs(t, err, authguard.ErrStoreRequired)
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()
		_, err := authguard.New(authguard.NewMemoryStore(), authguard.Config{Limit: 0, Window: time.Minute})
		require.ErrorIs(t, err, authguard.ErrInvalidConfig)
	})
}

func TestGuardBlocking(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("blocks at the limit", func(t *testing.T) {
		t.Parallel()
		g := newTestGuard(t, 3)

		for i := 0; i < 2; i++ {
			blocked, err := g.RecordFailure(ctx, authguard.KindLogin, "alice")
			require.NoError(t, err)
			assert.False(t, blocked, "attempt %d", i+1)
		}
		blocked, err := g.RecordFailure(ctx, authguard.KindLogin, "alice")
		require.NoError(t, err)
		assert.True(t, blocked)

		blocked, err = g.IsBlocked(ctx, authguard.KindLogin, "alice")
		require.NoError(t, err)
		assert.True(t, blocked)
	})

	t.Run("counters are per kind and user", func(t *testing.T) {
		t.Parallel()
		g := newTestGuard(t, 1)

		_, err := g.RecordFailure(ctx, authguard.KindLogin, "alice")
		require.NoError(t, err)

		blocked, err := g.IsBlocked(ctx, authguard.KindMFA, "alice")
		require.NoError(t, err)
		assert.False(t, blocked)

		blocked, err = g.IsBlocked(ctx, authguard.KindLogin, "bob")
		require.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("unblock clears both kinds", func(t *testing.T) {
		t.Parallel()
		g := newTestGuard(t, 1)

		_, err := g.RecordFailure(ctx, authguard.KindLogin, "alice")
		require.NoError(t, err)
		_, err = g.RecordFailure(ctx, authguard.KindMFA, "alice")
		require.NoError(t, err)

		require.NoError(t, g.Unblock(ctx, "alice"))

		for _, kind := range []authguard.Kind{authguard.KindLogin, authguard.KindMFA} {
			blocked, err := g.IsBlocked(ctx, kind, "alice")
			require.NoError(t, err)
			assert.False(t, blocked, string(kind))
		}
	})

	t.Run("empty username rejected", func(t *testing.T) {
		t.Parallel()
		g := newTestGuard(t, 1)

		_, err := g.RecordFailure(ctx, authguard.KindLogin, "")
		require.ErrorIs(t, err, authguard.ErrUsernameRequired)
		_, err = g.IsBlocked(ctx, authguard.KindLogin, "")
		require.ErrorIs(t, err, authguard.ErrUsernameRequired)
		err = g.Unblock(ctx, "")
		require.ErrorIs(t, err, authguard.ErrUsernameRequired)
	})
}
