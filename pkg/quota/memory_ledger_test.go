package quota_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/textgate/pkg/plan"
	"github.com/dmitrymomot/textgate/pkg/quota"
)

func freePlan(limit int64) plan.Plan {
	return plan.Plan{Tier: plan.TierFree, MonthlyLimit: limit}
}

func TestMemoryLedger_CheckAndConsume(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("admits up to the cap and rejects the next call", func(t *testing.T) {
		ledger := quota.NewMemoryLedger(quota.WithCleanupInterval(0))
		p := freePlan(10)
		period := quota.Period("2025-11")

		for i := int64(1); i <= 10; i++ {
			res, err := ledger.CheckAndConsume(ctx, "u1", p, period)
			require.NoError(t, err)
			assert.True(t, res.Allowed)
			assert.Equal(t, i, res.Used)
			assert.Equal(t, int64(10), res.Limit)
			assert.Equal(t, 10-i, res.Remaining)
		}

		res, err := ledger.CheckAndConsume(ctx, "u1", p, period)
		require.NoError(t, err)
		assert.False(t, res.Allowed)
		assert.Equal(t, int64(10), res.Used)
		assert.Equal(t, int64(10), res.Limit)
		assert.Zero(t, res.Remaining)
	})

	t.Run("rejection does not mutate the count", func(t *testing.T) {
		ledger := quota.NewMemoryLedger(quota.WithCleanupInterval(0))
		p := freePlan(1)
		period := quota.Period("2025-11")

		_, err := ledger.CheckAndConsume(ctx, "u1", p, period)
		require.NoError(t, err)

		for range 5 {
			res, err := ledger.CheckAndConsume(ctx, "u1", p, period)
			require.NoError(t, err)
			assert.False(t, res.Allowed)
		}

		used, err := ledger.Usage(ctx, "u1", period)
		require.NoError(t, err)
		assert.Equal(t, int64(1), used)
	})

	t.Run("new period starts fresh regardless of previous usage", func(t *testing.T) {
		ledger := quota.NewMemoryLedger(quota.WithCleanupInterval(0))
		p := freePlan(10)
		nov := quota.Period("2025-11")

		for range 10 {
			res, err := ledger.CheckAndConsume(ctx, "u1", p, nov)
			require.NoError(t, err)
			require.True(t, res.Allowed)
		}

		res, err := ledger.CheckAndConsume(ctx, "u1", p, nov.Next())
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, int64(1), res.Used)
	})

	t.Run("identities are independent", func(t *testing.T) {
		ledger := quota.NewMemoryLedger(quota.WithCleanupInterval(0))
		p := freePlan(1)
		period := quota.Period("2025-11")

		res, err := ledger.CheckAndConsume(ctx, "u1", p, period)
		require.NoError(t, err)
		require.True(t, res.Allowed)

		res, err = ledger.CheckAndConsume(ctx, "u2", p, period)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	})

	t.Run("unlimited plan never rejects", func(t *testing.T) {
		ledger := quota.NewMemoryLedger(quota.WithCleanupInterval(0))
		p := plan.Plan{Tier: plan.TierGrowth, MonthlyLimit: plan.Unlimited}
		period := quota.Period("2025-11")

		for range 100 {
			res, err := ledger.CheckAndConsume(ctx, "u1", p, period)
			require.NoError(t, err)
			require.True(t, res.Allowed)
			assert.Equal(t, plan.Unlimited, res.Remaining)
		}
	})
}

func TestMemoryLedger_Concurrency(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger := quota.NewMemoryLedger(quota.WithCleanupInterval(0))

	const (
		limit    = int64(5)
		requests = 50
	)
	p := freePlan(limit)
	period := quota.Period("2025-11")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int64
		rejected int64
	)

	for range requests {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := ledger.CheckAndConsume(ctx, "u1", p, period)
			require.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			if res.Allowed {
				admitted++
			} else {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, admitted)
	assert.Equal(t, int64(requests)-limit, rejected)

	used, err := ledger.Usage(ctx, "u1", period)
	require.NoError(t, err)
	assert.Equal(t, limit, used)
}

func TestMemoryLedger_Reset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ledger := quota.NewMemoryLedger(quota.WithCleanupInterval(0))
	p := freePlan(2)
	period := quota.Period("2025-11")

	for range 2 {
		res, err := ledger.CheckAndConsume(ctx, "u1", p, period)
		require.NoError(t, err)
		require.True(t, res.Allowed)
	}

	require.NoError(t, ledger.Reset(ctx, "u1", period))

	used, err := ledger.Usage(ctx, "u1", period)
	require.NoError(t, err)
	assert.Zero(t, used)

	res, err := ledger.CheckAndConsume(ctx, "u1", p, period)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, int64(1), res.Used)
}
