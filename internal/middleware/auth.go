// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/serragrande/logsgb/internal/models"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionResolver resolves bearer tokens to sessions.
type SessionResolver interface {
	Resolve(token string) (models.Session, bool)
}

// SessionAuth enforces bearer-token authentication.
//
// The /api/register and /api/login endpoints are excluded so unauthenticated
// visitors can enter the gate; /metrics is excluded for scrapers. On success
// the resolved session is stored in the request context for downstream
// handlers.
func SessionAuth(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/register", "/api/login", "/metrics":
				next.ServeHTTP(w, r)
				return
			}
			token := BearerToken(r)
			if token == "" {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			sess, ok := resolver.Resolve(token)
			if !ok {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireApproved rejects sessions still pending approval. Pending sessions
// may only reach the logout and session-info endpoints, which are mounted
// outside this middleware.
func RequireApproved(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := GetSessionFromContext(r.Context())
		if !ok || sess.Status != models.StatusApproved {
			http.Error(w, "access denied", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSuperAdmin restricts a route group to the hardcoded super-admin
// identity. The check is a plain username comparison.
func RequireSuperAdmin(superUsername string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetSessionFromContext(r.Context())
			if !ok || sess.Username != superUsername {
				http.Error(w, "access denied", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the token of an "Authorization: Bearer" header.
// Returns an empty string when the header is absent or malformed.
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, prefix))
}

// GetSessionFromContext extracts the authenticated session from the request
// context. The second return value is false when no session is present.
func GetSessionFromContext(ctx context.Context) (models.Session, bool) {
	val := ctx.Value(sessionKey)
	if s, ok := val.(models.Session); ok {
		return s, true
	}
	return models.Session{}, false
}
