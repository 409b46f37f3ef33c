package plan

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists tier assignments in the plans table
// (see internal/db/migrations). The identity column is the primary key,
// so Set is a natural idempotent upsert.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, identity string) (Tier, error) {
	var tier string
	err := s.pool.QueryRow(ctx,
		`SELECT tier FROM plans WHERE identity = $1`, identity,
	).Scan(&tier)
	if errors.Is(err, pgx.ErrNoRows) {
		return TierFree, nil
	}
	if err != nil {
		return TierFree, errors.Join(ErrStoreUnavailable, err)
	}
	return Tier(tier), nil
}

func (s *PostgresStore) Set(ctx context.Context, identity string, tier Tier) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO plans (identity, tier, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (identity)
		 DO UPDATE SET tier = EXCLUDED.tier, updated_at = now()`,
		identity, string(tier),
	)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
