// Package redis provides the Redis connection used by the quota ledger:
// URL-based configuration, startup retries, and a readiness probe.
package redis
