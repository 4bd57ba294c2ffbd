package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iho/bankcore/internal/infrastructure/auth"
)

// ContextKey is the type for context keys set by middleware.
type ContextKey string

const (
	// AccountContextKey holds the authenticated session claims.
	AccountContextKey ContextKey = "account"
)

// AuthMiddleware verifies the Bearer token and stores the session claims
// in the request context.
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), AccountContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAccountOwner rejects requests whose {accountNumber} URL parameter
// does not match the session account. A session can only read its own
// balance and history.
func RequireAccountOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := AccountFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if chi.URLParam(r, "accountNumber") != claims.AccountNumber {
			http.Error(w, "account does not belong to session", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AccountFromContext extracts the session claims from context.
func AccountFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(AccountContextKey).(*auth.Claims)
	return claims, ok
}
