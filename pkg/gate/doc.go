// Package gate implements the request gate in front of the metered
// generation endpoint.
//
// For each request the gate resolves the caller's identity and plan,
// then atomically consumes one unit from the monthly quota ledger. The
// verdict is exposed as a Decision and, via Middleware, as response
// headers plus an HTTP 402 rejection when the cap is exhausted.
//
// Two properties matter here. First, the admin override bypasses
// everything and never mutates the ledger. Second, storage failures
// resolve to an explicit, logged policy (fail-open by default) bounded
// by a per-request storage timeout; they never propagate as faults to
// the caller.
package gate
