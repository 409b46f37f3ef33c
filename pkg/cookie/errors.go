package cookie

import "errors"

var (
	ErrNoSecret         = errors.New("at least one signing secret is required")
	ErrSecretTooShort   = errors.New("signing secret too short")
	ErrCookieNotFound   = errors.New("cookie not found")
	ErrInvalidFormat    = errors.New("invalid signed cookie format")
	ErrInvalidSignature = errors.New("invalid cookie signature")
)
