package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resmedx/noticeboard/internal/auth"
)

func protectedEcho(t *testing.T, tokens *auth.JWT) http.Handler {
	t.Helper()
	return RequireAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := EmailFromContext(r.Context())
		require.True(t, ok)
		w.Write([]byte(email))
	}))
}

func TestRequireAuthBearer(t *testing.T) {
	tokens := auth.NewJWT("secret", 0)
	token, err := tokens.Issue("alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	protectedEcho(t, tokens).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alice@example.com", rr.Body.String())
}

func TestRequireAuthCookieFallback(t *testing.T) {
	tokens := auth.NewJWT("secret", 0)
	token, err := tokens.Issue("alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: token})
	rr := httptest.NewRecorder()
	protectedEcho(t, tokens).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alice@example.com", rr.Body.String())
}

func TestRequireAuthRejects(t *testing.T) {
	tokens := auth.NewJWT("secret", 0)
	forged, err := auth.NewJWT("other-secret", 0).Issue("alice@example.com")
	require.NoError(t, err)

	cases := []struct {
		name  string
		setup func(*http.Request)
	}{
		{"no token", func(r *http.Request) {}},
		{"malformed header", func(r *http.Request) { r.Header.Set("Authorization", "Token abc") }},
		{"forged token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+forged) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tc.setup(req)
			rr := httptest.NewRecorder()
			protectedEcho(t, tokens).ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}
