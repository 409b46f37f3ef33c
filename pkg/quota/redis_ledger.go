package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/textgate/pkg/plan"
)

const (
	fieldUsed      = "used"
	fieldPlan      = "plan"
	fieldUpdatedAt = "updated_at"

	// defaultTTL keeps a record slightly past two period boundaries so
	// end-of-month reads never race expiry. Stale periods are simply
	// never read again and expire on their own (lazy rollover).
	defaultTTL = 66 * 24 * time.Hour
)

// RedisLedger stores each (identity, period) record as a hash under
// quota:{identity}:{period}. Admission uses the server-side HINCRBY,
// which is atomic in Redis: every concurrent request observes a unique
// post-increment value, and exactly those with a value within the cap
// are admitted. An over-the-cap increment is rolled back so the stored
// count settles at the limit.
type RedisLedger struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// RedisLedgerOption configures a RedisLedger.
type RedisLedgerOption func(*RedisLedger)

// WithRecordTTL overrides how long quota records live past their period.
func WithRecordTTL(ttl time.Duration) RedisLedgerOption {
	return func(l *RedisLedger) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

func NewRedisLedger(client redis.UniversalClient, opts ...RedisLedgerOption) *RedisLedger {
	l := &RedisLedger{
		client: client,
		ttl:    defaultTTL,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func recordKey(identity string, period Period) string {
	return fmt.Sprintf("quota:%s:%s", identity, period)
}

func (l *RedisLedger) CheckAndConsume(ctx context.Context, identity string, p plan.Plan, period Period) (Result, error) {
	limit := p.MonthlyLimit
	if limit < 0 && limit != plan.Unlimited {
		return Result{}, ErrInvalidLimit
	}

	key := recordKey(identity, period)

	used, err := l.client.HIncrBy(ctx, key, fieldUsed, 1).Result()
	if err != nil {
		return Result{}, errors.Join(ErrLedgerUnavailable, err)
	}

	if limit != plan.Unlimited && used > limit {
		// Undo the speculative increment so the counter settles at the
		// cap. Admissions are exactly the requests whose post-increment
		// value landed within the cap, so concurrent overshoot cannot
		// admit more than limit requests.
		if derr := l.client.HIncrBy(ctx, key, fieldUsed, -1).Err(); derr != nil {
			return Result{}, errors.Join(ErrLedgerUnavailable, derr)
		}
		return Result{Allowed: false, Used: limit, Limit: limit, Remaining: 0}, nil
	}

	// The counter is authoritative; plan snapshot and timestamp are
	// advisory metadata, so their write failures do not revoke the
	// admission already granted above.
	pipe := l.client.Pipeline()
	pipe.HSet(ctx, key,
		fieldPlan, string(p.Tier),
		fieldUpdatedAt, time.Now().UTC().Format(time.RFC3339),
	)
	pipe.Expire(ctx, key, l.ttl)
	_, _ = pipe.Exec(ctx)

	return Result{
		Allowed:   true,
		Used:      used,
		Limit:     limit,
		Remaining: remaining(used, limit),
	}, nil
}

func (l *RedisLedger) Usage(ctx context.Context, identity string, period Period) (int64, error) {
	used, err := l.client.HGet(ctx, recordKey(identity, period), fieldUsed).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Join(ErrLedgerUnavailable, err)
	}
	return used, nil
}

func (l *RedisLedger) Reset(ctx context.Context, identity string, period Period) error {
	// Deleting the record is equivalent to a fresh record with used=0.
	if err := l.client.Del(ctx, recordKey(identity, period)).Err(); err != nil {
		return errors.Join(ErrLedgerUnavailable, err)
	}
	return nil
}

func remaining(used, limit int64) int64 {
	if limit == plan.Unlimited {
		return plan.Unlimited
	}
	return max(limit-used, 0)
}
