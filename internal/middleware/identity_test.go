package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/employee-graph-api/internal/graph"
	"github.com/noah-isme/employee-graph-api/internal/models"
	"github.com/noah-isme/employee-graph-api/internal/service"
)

func identityProbe(auth *service.AuthService) (*gin.Engine, *[]*models.Identity) {
	gin.SetMode(gin.TestMode)
	seen := &[]*models.Identity{}
	r := gin.New()
	r.Use(Identity(auth, nil))
	r.GET("/probe", func(c *gin.Context) {
		*seen = append(*seen, graph.IdentityFrom(c.Request.Context()))
		c.Status(http.StatusOK)
	})
	return r, seen
}

func TestIdentityResolvesBearerToken(t *testing.T) {
	auth := service.NewAuthService(nil, nil, nil, nil, service.AuthConfig{Secret: "test-secret", TokenExpiry: time.Hour})
	token, err := auth.IssueToken(&models.User{ID: "u1", Email: "amit@example.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	r, seen := identityProbe(auth)
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *seen, 1)
	identity := (*seen)[0]
	require.NotNil(t, identity)
	assert.Equal(t, "u1", identity.UserID)
	assert.Equal(t, models.RoleAdmin, identity.Role)
	assert.Equal(t, "amit@example.com", identity.Email)
}

func TestIdentityPassesThroughWithoutToken(t *testing.T) {
	auth := service.NewAuthService(nil, nil, nil, nil, service.AuthConfig{Secret: "test-secret", TokenExpiry: time.Hour})

	r, seen := identityProbe(auth)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *seen, 1)
	assert.Nil(t, (*seen)[0])
}

func TestIdentityIgnoresInvalidToken(t *testing.T) {
	auth := service.NewAuthService(nil, nil, nil, nil, service.AuthConfig{Secret: "test-secret", TokenExpiry: time.Hour})

	r, seen := identityProbe(auth)
	for _, header := range []string{
		"Bearer not-a-token",
		"Basic dXNlcjpwYXNz",
		"Bearer",
	} {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	require.Len(t, *seen, 3)
	for _, identity := range *seen {
		assert.Nil(t, identity, "bad credentials resolve to no identity, not an error")
	}
}
