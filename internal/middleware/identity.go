package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/employee-graph-api/internal/graph"
	"github.com/noah-isme/employee-graph-api/internal/service"
)

// Identity resolves an optional bearer credential into a per-request
// identity on the request context. A missing, malformed or invalid token
// never blocks the request: per-operation gates decide what requires
// authentication.
func Identity(auth *service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			logger.Warn("invalid bearer token", zap.Error(err))
			c.Next()
			return
		}

		ctx := graph.WithIdentity(c.Request.Context(), claims.Identity())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
