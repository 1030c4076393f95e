package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/edvin/alloy/internal/api/response"
	"github.com/edvin/alloy/internal/core"
	"github.com/edvin/alloy/internal/model"
)

type claimsContextKey string

// ClaimsKey holds the validated session claims in the request context.
const ClaimsKey claimsContextKey = "claims"

// Auth returns middleware that validates JWT Bearer tokens and injects
// claims into context.
func Auth(authService *core.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.WriteError(w, r, http.StatusUnauthorized, response.ErrUnauthorized, "missing authorization header")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				response.WriteError(w, r, http.StatusUnauthorized, response.ErrUnauthorized, "invalid authorization format")
				return
			}

			claims, err := authService.ValidateToken(token)
			if err != nil {
				response.WriteError(w, r, http.StatusUnauthorized, response.ErrUnauthorized, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims extracts session claims from the request context.
func GetClaims(ctx context.Context) *model.SessionClaims {
	claims, _ := ctx.Value(ClaimsKey).(*model.SessionClaims)
	return claims
}

// GetCustomerID derives the caller's billing customer id from the session
// claims in the context, or "" when unauthenticated.
func GetCustomerID(ctx context.Context) string {
	claims := GetClaims(ctx)
	if claims == nil {
		return ""
	}
	return core.CustomerIDForSubject(claims.Sub)
}
