// Package auth provides authentication context helpers and the token
// codec used by the HTTP layer.
//
// This package is designed to be imported by both middleware and handler
// packages without causing import cycles.
package auth

import (
	"context"

	"github.com/ignisguard/server/internal/domain"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const principalContextKey contextKey = "principal"

// GetPrincipal retrieves the authenticated principal from the context.
//
// Returns the zero Principal and false if no principal is authenticated.
func GetPrincipal(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(domain.Principal)
	return p, ok
}

// SetPrincipal stores a principal in the context.
//
// This is typically called by authentication middleware after validating
// a bearer token.
func SetPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}
