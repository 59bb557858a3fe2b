package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/employee-graph-api/internal/models"
	appErrors "github.com/noah-isme/employee-graph-api/pkg/errors"
)

func TestRequireAuth(t *testing.T) {
	_, err := requireAuth(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)

	identity, err := requireAuth(employeeCtx())
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, identity.Role)
}

func TestRequireRole(t *testing.T) {
	_, err := requireRole(context.Background(), models.RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code, "missing identity wins over wrong role")

	_, err = requireRole(employeeCtx(), models.RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	identity, err := requireRole(adminCtx(), models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, identity.Role)

	_, err = requireRole(employeeCtx(), models.RoleAdmin, models.RoleEmployee)
	assert.NoError(t, err)
}
