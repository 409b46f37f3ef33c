// Package plan defines subscription tiers and the durable mapping from
// caller identity to current tier.
//
// A Catalog holds the closed set of plans the service sells, loaded once
// at startup from a Source (built-in defaults, in-memory, or a YAML file).
// Each plan carries a monthly generation cap and, for paid tiers, the
// payment provider's price ID.
//
// A Store maps identities to their effective tier. The store is the only
// trusted source of a caller's plan: it is written exclusively by the
// billing webhook service and read by the request gate. Absence of a
// record means the free tier, and Get fails open to free so an unknown
// identity is never rejected outright.
//
// Three implementations are provided: PostgresStore (system of record),
// RedisStore (record or cache, optional TTL), and MemoryStore (single
// process fallback, not correct across replicas).
package plan
