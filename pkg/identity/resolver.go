package identity

import (
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/textgate/pkg/clientip"
	"github.com/dmitrymomot/textgate/pkg/cookie"
)

// Config holds identity resolution settings.
type Config struct {
	UserIDHeader string `env:"IDENTITY_USER_HEADER" envDefault:"X-User-ID"`
	CookieName   string `env:"IDENTITY_COOKIE_NAME" envDefault:"tg_vid"`
	CookieMaxAge int    `env:"IDENTITY_COOKIE_MAX_AGE" envDefault:"31536000"` // one year
	AdminHeader  string `env:"ADMIN_HEADER" envDefault:"X-Admin-Secret"`
	AdminSecret  string `env:"ADMIN_SECRET" envDefault:""`
}

// Resolver derives a stable caller identity from a request. It never
// fails: when no explicit user id or visitor cookie is present it
// assigns a fresh visitor id, and degrades to the client IP only when
// no cookie manager is configured.
type Resolver struct {
	cookies *cookie.Manager
	cfg     Config
}

// NewResolver creates a Resolver. The cookie manager may be nil, in
// which case visitor ids are disabled and anonymous callers are keyed
// by IP address, a known-weaker degraded mode.
func NewResolver(cookies *cookie.Manager, cfg Config) *Resolver {
	if cfg.UserIDHeader == "" {
		cfg.UserIDHeader = "X-User-ID"
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "tg_vid"
	}
	if cfg.AdminHeader == "" {
		cfg.AdminHeader = "X-Admin-Secret"
	}
	return &Resolver{cookies: cookies, cfg: cfg}
}

// Resolve returns the caller's identity, falling through the priority
// order: explicit user id header, signed visitor cookie, client IP.
//
// On first contact it assigns a new visitor id and writes the signed
// cookie to the response, so this must be called before any body bytes
// are sent. A cookie that fails signature verification is treated as
// absent and replaced.
func (rs *Resolver) Resolve(w http.ResponseWriter, r *http.Request) Identity {
	if userID := r.Header.Get(rs.cfg.UserIDHeader); userID != "" {
		return Identity{Value: userID, Source: SourceUser}
	}

	if rs.cookies == nil {
		return Identity{Value: clientip.GetIP(r), Source: SourceIP}
	}

	if vid, err := rs.cookies.GetSigned(r, rs.cfg.CookieName); err == nil && vid != "" {
		return Identity{Value: vid, Source: SourceVisitor}
	}

	vid := uuid.NewString()
	rs.cookies.SetSigned(w, rs.cfg.CookieName, vid, cookie.WithMaxAge(rs.cfg.CookieMaxAge))

	return Identity{Value: vid, Source: SourceVisitor}
}

// IsAdmin reports whether the request carries the administrative secret.
// Always false when no secret is configured. The comparison is constant
// time so the header value cannot be probed byte by byte.
func (rs *Resolver) IsAdmin(r *http.Request) bool {
	if rs.cfg.AdminSecret == "" {
		return false
	}

	got := r.Header.Get(rs.cfg.AdminHeader)
	if got == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(got), []byte(rs.cfg.AdminSecret)) == 1
}
