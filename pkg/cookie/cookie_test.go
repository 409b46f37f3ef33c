package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/textgate/pkg/cookie"
)

const testSecret = "test-secret-key-32-characters-ok"

func requestWithCookies(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a secret", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New(nil)
		assert.ErrorIs(t, err, cookie.ErrNoSecret)

		_, err = cookie.New([]string{""})
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("rejects short secrets", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.New([]string{"too-short"})
		assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
	})
}

func TestManager_SetGet(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	m.Set(w, "session", "abc123", cookie.WithMaxAge(3600))

	got, err := m.Get(requestWithCookies(t, w), "session")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "session")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	t.Run("roundtrip", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.SetSigned(w, "vid", "visitor-42")

		got, err := m.GetSigned(requestWithCookies(t, w), "vid")
		require.NoError(t, err)
		assert.Equal(t, "visitor-42", got)
	})

	t.Run("tampered value fails verification", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.SetSigned(w, "vid", "visitor-42")

		c := w.Result().Cookies()[0]
		encoded, sig, ok := strings.Cut(c.Value, "|")
		require.True(t, ok)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "vid", Value: encoded + "x|" + sig})

		_, err := m.GetSigned(r, "vid")
		assert.Error(t, err)
	})

	t.Run("unsigned value is invalid format", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "vid", Value: "plain-value"})

		_, err := m.GetSigned(r, "vid")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})

	t.Run("wrong key fails verification", func(t *testing.T) {
		t.Parallel()
		other, err := cookie.New([]string{"another-secret-key-32-chars-long"})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		m.SetSigned(w, "vid", "visitor-42")

		_, err = other.GetSigned(requestWithCookies(t, w), "vid")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("key rotation keeps old cookies valid", func(t *testing.T) {
		t.Parallel()
		oldManager, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		oldManager.SetSigned(w, "vid", "visitor-42")

		rotated, err := cookie.New([]string{"new-signing-secret-32-chars-long", testSecret})
		require.NoError(t, err)

		got, err := rotated.GetSigned(requestWithCookies(t, w), "vid")
		require.NoError(t, err)
		assert.Equal(t, "visitor-42", got)
	})
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	m.Delete(w, "session")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("splits comma-separated secrets", func(t *testing.T) {
		t.Parallel()
		m, err := cookie.NewFromConfig(cookie.Config{
			Secrets: testSecret + ", another-secret-key-32-chars-long",
		})
		require.NoError(t, err)
		require.NotNil(t, m)
	})

	t.Run("empty secrets fail", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.NewFromConfig(cookie.Config{Secrets: " , "})
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})
}
