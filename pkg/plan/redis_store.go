package plan

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "plan:"

// RedisStore persists tier assignments in Redis.
// Records have no TTL by default: a paid tier stays in effect until the
// billing webhook overwrites it.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithTTL sets an expiry on plan records. Useful when Redis is used as
// a cache in front of a durable store rather than as the system of record.
func WithTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Get(ctx context.Context, identity string) (Tier, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+identity).Result()
	if errors.Is(err, redis.Nil) {
		return TierFree, nil
	}
	if err != nil {
		return TierFree, errors.Join(ErrStoreUnavailable, err)
	}
	return Tier(val), nil
}

func (s *RedisStore) Set(ctx context.Context, identity string, tier Tier) error {
	if err := s.client.Set(ctx, redisKeyPrefix+identity, string(tier), s.ttl).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
