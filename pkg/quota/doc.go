// Package quota implements the monthly consumption ledger behind the
// request gate.
//
// A Ledger counts metered calls per (identity, billing period), where a
// period is a UTC calendar month. The core operation is CheckAndConsume,
// an atomic check-and-increment: under concurrent requests from the same
// identity at most the plan's monthly cap is admitted per period, for any
// interleaving. Rollover is lazy: a new month is simply a new record key,
// nothing is eagerly reset or deleted.
//
// RedisLedger is the production implementation, built on Redis's atomic
// HINCRBY with rollback on overshoot. MemoryLedger is a single-process
// fallback guarded by a mutex, suitable for tests and degraded modes only.
package quota
