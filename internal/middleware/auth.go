package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/resmedx/noticeboard/internal/auth"
)

type ctxKey string

const emailKey ctxKey = "email"

// EmailFromContext returns the authenticated email set by RequireAuth.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

// RequireAuth validates the bearer token (falling back to the token
// cookie) and injects the email claim into the request context.
func RequireAuth(tokens *auth.JWT) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				token = strings.TrimPrefix(h, "Bearer ")
			} else if c, err := r.Cookie(auth.TokenCookie); err == nil {
				token = c.Value
			}
			if token == "" {
				http.Error(w, `{"error":"not authenticated"}`, http.StatusUnauthorized)
				return
			}

			email, err := tokens.Verify(token)
			if err != nil {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), emailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
