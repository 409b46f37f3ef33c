package plan_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/textgate/pkg/plan"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := plan.NewMemoryStore()

	t.Run("unknown identity resolves to free", func(t *testing.T) {
		tier, err := store.Get(ctx, "stranger")
		require.NoError(t, err)
		assert.Equal(t, plan.TierFree, tier)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "u1", plan.TierStarter))

		tier, err := store.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, plan.TierStarter, tier)
	})

	t.Run("set is an idempotent overwrite", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "u2", plan.TierGrowth))
		require.NoError(t, store.Set(ctx, "u2", plan.TierGrowth))
		require.NoError(t, store.Set(ctx, "u2", plan.TierFree))

		tier, err := store.Get(ctx, "u2")
		require.NoError(t, err)
		assert.Equal(t, plan.TierFree, tier)
	})
}

func TestRedisStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	newStore := func(t *testing.T, opts ...plan.RedisStoreOption) (*plan.RedisStore, *miniredis.Miniredis) {
		t.Helper()
		srv := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return plan.NewRedisStore(client, opts...), srv
	}

	t.Run("unknown identity resolves to free", func(t *testing.T) {
		t.Parallel()
		store, _ := newStore(t)

		tier, err := store.Get(ctx, "stranger")
		require.NoError(t, err)
		assert.Equal(t, plan.TierFree, tier)
	})

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()
		store, _ := newStore(t)

		require.NoError(t, store.Set(ctx, "u1", plan.TierGrowth))

		tier, err := store.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, plan.TierGrowth, tier)
	})

	t.Run("records have no expiry by default", func(t *testing.T) {
		t.Parallel()
		store, srv := newStore(t)

		require.NoError(t, store.Set(ctx, "u1", plan.TierStarter))
		assert.Zero(t, srv.TTL("plan:u1"))
	})

	t.Run("optional ttl applies to records", func(t *testing.T) {
		t.Parallel()
		store, srv := newStore(t, plan.WithTTL(time.Hour))

		require.NoError(t, store.Set(ctx, "u1", plan.TierStarter))
		assert.Equal(t, time.Hour, srv.TTL("plan:u1"))
	})

	t.Run("unavailable store surfaces sentinel error", func(t *testing.T) {
		t.Parallel()
		store, srv := newStore(t)
		srv.Close()

		_, err := store.Get(ctx, "u1")
		assert.ErrorIs(t, err, plan.ErrStoreUnavailable)

		err = store.Set(ctx, "u1", plan.TierStarter)
		assert.ErrorIs(t, err, plan.ErrStoreUnavailable)
	})
}
