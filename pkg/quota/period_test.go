package quota_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/textgate/pkg/quota"
)

func TestCurrentPeriod(t *testing.T) {
	t.Parallel()

	t.Run("formats year-month", func(t *testing.T) {
		now := time.Date(2025, time.November, 15, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, quota.Period("2025-11"), quota.CurrentPeriod(now))
	})

	t.Run("uses UTC regardless of local zone", func(t *testing.T) {
		// 23:30 on Nov 30 in UTC-5 is already December in UTC.
		loc := time.FixedZone("UTC-5", -5*60*60)
		now := time.Date(2025, time.November, 30, 23, 30, 0, 0, loc)
		assert.Equal(t, quota.Period("2025-12"), quota.CurrentPeriod(now))
	})

	t.Run("distinct months produce distinct periods", func(t *testing.T) {
		nov := quota.CurrentPeriod(time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC))
		dec := quota.CurrentPeriod(time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC))
		assert.NotEqual(t, nov, dec)
	})
}

func TestPeriodNext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, quota.Period("2025-12"), quota.Period("2025-11").Next())
	assert.Equal(t, quota.Period("2026-01"), quota.Period("2025-12").Next())
	assert.Equal(t, quota.Period("bogus"), quota.Period("bogus").Next())
}
