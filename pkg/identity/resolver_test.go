package identity_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/textgate/pkg/cookie"
	"github.com/dmitrymomot/textgate/pkg/identity"
)

func newCookieManager(t *testing.T) *cookie.Manager {
	t.Helper()

	m, err := cookie.New([]string{"test-secret-key-32-characters-ok"})
	require.NoError(t, err)
	return m
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("user id header takes priority", func(t *testing.T) {
		t.Parallel()
		rs := identity.NewResolver(newCookieManager(t), identity.Config{})

		r := httptest.NewRequest(http.MethodPost, "/v1/generate", nil)
		r.Header.Set("X-User-ID", "user-7")
		w := httptest.NewRecorder()

		id := rs.Resolve(w, r)
		assert.Equal(t, identity.Identity{Value: "user-7", Source: identity.SourceUser}, id)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("first contact assigns a visitor id and sets the cookie", func(t *testing.T) {
		t.Parallel()
		rs := identity.NewResolver(newCookieManager(t), identity.Config{})

		r := httptest.NewRequest(http.MethodPost, "/v1/generate", nil)
		w := httptest.NewRecorder()

		id := rs.Resolve(w, r)
		assert.Equal(t, identity.SourceVisitor, id.Source)
		assert.NotEmpty(t, id.Value)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "tg_vid", cookies[0].Name)
	})

	t.Run("returning visitor keeps the same id", func(t *testing.T) {
		t.Parallel()
		rs := identity.NewResolver(newCookieManager(t), identity.Config{})

		first := httptest.NewRecorder()
		id := rs.Resolve(first, httptest.NewRequest(http.MethodPost, "/v1/generate", nil))

		r := httptest.NewRequest(http.MethodPost, "/v1/generate", nil)
		for _, c := range first.Result().Cookies() {
			r.AddCookie(c)
		}
		w := httptest.NewRecorder()

		again := rs.Resolve(w, r)
		assert.Equal(t, id, again)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("tampered cookie is replaced with a fresh id", func(t *testing.T) {
		t.Parallel()
		rs := identity.NewResolver(newCookieManager(t), identity.Config{})

		r := httptest.NewRequest(http.MethodPost, "/v1/generate", nil)
		r.AddCookie(&http.Cookie{Name: "tg_vid", Value: "forged-value"})
		w := httptest.NewRecorder()

		id := rs.Resolve(w, r)
		assert.Equal(t, identity.SourceVisitor, id.Source)
		assert.NotEqual(t, "forged-value", id.Value)
		assert.Len(t, w.Result().Cookies(), 1)
	})

	t.Run("nil cookie manager degrades to client ip", func(t *testing.T) {
		t.Parallel()
		rs := identity.NewResolver(nil, identity.Config{})

		r := httptest.NewRequest(http.MethodPost, "/v1/generate", nil)
		r.RemoteAddr = "203.0.113.9:5678"
		w := httptest.NewRecorder()

		id := rs.Resolve(w, r)
		assert.Equal(t, identity.Identity{Value: "203.0.113.9", Source: identity.SourceIP}, id)
	})
}

func TestResolver_IsAdmin(t *testing.T) {
	t.Parallel()

	t.Run("matching secret", func(t *testing.T) {
		t.Parallel()
		rs := identity.NewResolver(nil, identity.Config{AdminSecret: "hunter2hunter2"})

		r := httptest.NewRequest(http.MethodPost, "/v1/generate", nil)
		r.Header.Set("X-Admin-Secret", "hunter2hunter2")
		assert.True(t, rs.IsAdmin(r))
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		rs := identity.NewResolver(nil, identity.Config{AdminSecret: "hunter2hunter2"})

		r := httptest.NewRequest(http.MethodPost, "/v1/generate", nil)
		r.Header.Set("X-Admin-Secret", "wrong")
		assert.False(t, rs.IsAdmin(r))
	})

	t.Run("no secret configured disables admin", func(t *testing.T) {
		t.Parallel()
		rs := identity.NewResolver(nil, identity.Config{})

		r := httptest.NewRequest(http.MethodPost, "/v1/generate", nil)
		r.Header.Set("X-Admin-Secret", "")
		assert.False(t, rs.IsAdmin(r))

		r.Header.Set("X-Admin-Secret", "anything")
		assert.False(t, rs.IsAdmin(r))
	})
}
