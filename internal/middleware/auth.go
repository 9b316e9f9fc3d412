package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/trucklog/backend/internal/domain"
)

// SessionHeader is the request header carrying the opaque session token.
const SessionHeader = "X-Session-Id"

// SessionResolver maps a session token to the identity it belongs to.
// *service.AuthService satisfies this.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (domain.PublicUser, error)
}

// contextKey is a private type so no other package can collide with our keys.
type contextKey struct{}

// userKey stores the resolved identity in the request context.
var userKey contextKey

// NewAuthGate returns a middleware that resolves the session token from the
// SessionHeader header and attaches the identity to the request context.
// Requests with a missing or unknown token are rejected with 401 before any
// downstream work runs. This is the only authorization boundary the system
// has — beyond it, ownership scoping in the store does the rest.
func NewAuthGate(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.Resolve(r.Context(), r.Header.Get(SessionHeader))
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Authentication required"})
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the identity attached by NewAuthGate.
// The second return is false when the request never passed through the gate.
func UserFromContext(ctx context.Context) (domain.PublicUser, bool) {
	user, ok := ctx.Value(userKey).(domain.PublicUser)
	return user, ok
}
