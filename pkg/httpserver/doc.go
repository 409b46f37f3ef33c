// Package httpserver wraps net/http with graceful shutdown, configured
// timeouts, and health-check handlers for liveness/readiness probes.
package httpserver
