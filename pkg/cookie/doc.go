// Package cookie provides a small cookie manager with HMAC-signed,
// tamper-evident values and key rotation support.
//
// The gateway uses it for the long-lived visitor identity cookie: the
// value is signed so a caller cannot forge another visitor's id, and
// rotation keeps previously issued ids valid when secrets change.
package cookie
