// Package pg provides the PostgreSQL pool behind the durable plan
// store: pgx pool construction with startup retries, goose schema
// migrations, and a readiness probe.
package pg
