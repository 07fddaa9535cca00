package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/ridesplit/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// Context keys set by ShareToken.
const (
	RideIDKey contextKey = "ride_id"
	ScopeKey  contextKey = "scope"
)

// GetRideID extracts the shared ride ID from the context.
// Returns empty string if not found.
func GetRideID(ctx context.Context) string {
	rideID, _ := ctx.Value(RideIDKey).(string)
	return rideID
}

// GetScope returns the scope of the share token, or "" without one.
func GetScope(ctx context.Context) auth.Scope {
	scope, _ := ctx.Value(ScopeKey).(auth.Scope)
	return scope
}

// ShareToken returns an interceptor that validates a share token if present.
// Requests without a token pass through without a ride ID; a malformed or
// invalid token is rejected.
func ShareToken(shares *auth.ShareManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			// Extract Authorization header
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return next(ctx, req)
			}

			// Parse Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			// Validate token
			claims, err := shares.Validate(parts[1])
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			// Add ride to context
			ctx = context.WithValue(ctx, RideIDKey, claims.RideID)
			ctx = context.WithValue(ctx, ScopeKey, claims.Scope)

			return next(ctx, req)
		}
	}
}
