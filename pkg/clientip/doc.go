// Package clientip extracts the client IP address from an HTTP request,
// preferring well-known proxy headers over the socket peer address.
// The gateway uses it as the weakest identity fallback when neither an
// explicit user id nor a durable visitor cookie is present.
package clientip
