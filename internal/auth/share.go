// Package auth issues and checks share tokens for saved rides.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid or expired share token")
	ErrMissingToken  = errors.New("share token required")
	ErrOwnerRequired = errors.New("owner token required")
)

// Scope is what a token holder may do with the ride.
type Scope string

const (
	// ScopeView allows reading the ride. It is the token put in share links.
	ScopeView Scope = "view"
	// ScopeOwner additionally allows deleting the ride. Only the creator receives it.
	ScopeOwner Scope = "owner"
)

// Allows reports whether a token of scope s may act with scope want.
func (s Scope) Allows(want Scope) bool {
	return s == ScopeOwner || s == want
}

// ShareManager handles share token generation and validation.
// A share token grants access to exactly one saved ride.
type ShareManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// Claims represents the custom JWT claims of a share token.
type Claims struct {
	RideID string `json:"ride_id"`
	Scope  Scope  `json:"scope"`
	jwt.RegisteredClaims
}

// NewShareManager creates a new share manager with the given secret and token lifetime.
// secretKey should be a strong random string (e.g., 32 bytes).
// A zero tokenDuration issues tokens that never expire.
func NewShareManager(secretKey string, tokenDuration time.Duration) *ShareManager {
	return &ShareManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

// Generate creates a new token for the given ride and scope.
func (m *ShareManager) Generate(rideID string, scope Scope) (string, error) {
	now := time.Now()
	claims := &Claims{
		RideID: rideID,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   rideID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if m.tokenDuration != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.tokenDuration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate parses and validates a share token, returning the claims if valid.
func (m *ShareManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.RideID == "" {
		return nil, ErrInvalidToken
	}
	if claims.Scope != ScopeView && claims.Scope != ScopeOwner {
		return nil, fmt.Errorf("%w: unknown scope %q", ErrInvalidToken, claims.Scope)
	}

	return claims, nil
}
