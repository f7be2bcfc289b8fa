package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/quizhub/internal/server/auth"
)

type contextKey int

const contextUserIDKey contextKey = iota

// CurrentUserID returns the authenticated user id placed into the context by
// the auth middleware.
func CurrentUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextUserIDKey).(string)
	return id, ok && id != ""
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(h, "Bearer "), true
}

// Authenticate requires a valid Bearer token. Missing header, malformed
// header and invalid token all produce the same 401 body, so a caller cannot
// tell which check failed.
func Authenticate(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeMsg(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			userID, err := auth.GetUserIDFromToken(raw, secret)
			if err != nil {
				writeMsg(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), contextUserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches identity when a valid token is present and passes
// through anonymously otherwise. It never rejects a request.
func OptionalAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw, ok := bearerToken(r); ok {
				if userID, err := auth.GetUserIDFromToken(raw, secret); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), contextUserIDKey, userID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
