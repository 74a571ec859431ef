package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/laurenz19/tourvisit/internal/security/auth"
)

type ClaimsContextKey struct{}

// BearerAuth gates protected routes on a valid access token. A missing or
// malformed Authorization header is 401 unauthenticated; a token that is
// present but fails verification (expired, tampered, wrong class) is 403.
// On success the decoded claims are attached to the request context.
func BearerAuth(tm *auth.TokenManager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthenticated(w, http.StatusUnauthorized)
				return
			}

			tokenString, err := auth.ExtractToken(authHeader)
			if err != nil {
				unauthenticated(w, http.StatusUnauthorized)
				return
			}

			claims, err := tm.VerifyAccessToken(tokenString)
			if err != nil {
				log.Debug("access token rejected", slog.String("error", err.Error()))
				unauthenticated(w, http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthenticated(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"message":"unauthenticated"}`))
}

// GetClaimsFromContext returns the claims attached by BearerAuth, or nil
// on an unauthenticated request.
func GetClaimsFromContext(ctx context.Context) *auth.Claims {
	if c := ctx.Value(ClaimsContextKey{}); c != nil {
		return c.(*auth.Claims)
	}
	return nil
}
