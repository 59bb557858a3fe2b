package graph

import (
	"context"

	"github.com/noah-isme/employee-graph-api/internal/models"
)

type contextKey struct{}

var identityKey contextKey

// WithIdentity attaches a resolved identity to the request context. A nil
// identity is a valid state meaning "no credential presented".
func WithIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom returns the identity attached to the context, or nil when the
// request carried no valid credential.
func IdentityFrom(ctx context.Context) *models.Identity {
	identity, _ := ctx.Value(identityKey).(*models.Identity)
	return identity
}
