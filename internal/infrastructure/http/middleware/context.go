package middleware

import (
	"context"

	"github.com/chima-angwe/location-stamper-backend/internal/application/ports"
)

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity injects the authenticated identity into the context.
func WithIdentity(ctx context.Context, identity ports.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext returns the identity set by AuthValidator, or false
// when the request was not authenticated.
func IdentityFromContext(ctx context.Context) (ports.Identity, bool) {
	v := ctx.Value(identityContextKey)
	if v == nil {
		return ports.Identity{}, false
	}
	identity, ok := v.(ports.Identity)
	return identity, ok
}
