package graph

import (
	"context"

	"github.com/noah-isme/employee-graph-api/internal/models"
	appErrors "github.com/noah-isme/employee-graph-api/pkg/errors"
)

// requireAuth returns the request identity or fails when none is present.
// It runs before any resolver side effect.
func requireAuth(ctx context.Context) (*models.Identity, error) {
	identity := IdentityFrom(ctx)
	if identity == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "not authenticated")
	}
	return identity, nil
}

// requireRole applies requireAuth first, then checks the identity's role
// against the allowed set.
func requireRole(ctx context.Context, allowed ...models.Role) (*models.Identity, error) {
	identity, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	for _, role := range allowed {
		if identity.Role == role {
			return identity, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrForbidden, "not authorized")
}
