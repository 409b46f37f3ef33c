// Package identity resolves a stable caller identity for every request
// and detects the administrative override credential.
//
// Resolution never fails. Priority order: an explicit user id header
// supplied by an upstream auth layer, a signed long-lived visitor
// cookie assigned on first contact, and finally the client IP address.
// Once issued, a visitor id never changes for a cooperating client; the
// IP fallback is explicitly the weakest identity and is only used when
// no cookie manager is configured.
//
// The admin override is a shared secret compared in constant time. It
// is resolved per request and never persisted anywhere.
package identity
