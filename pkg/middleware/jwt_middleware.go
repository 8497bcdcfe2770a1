package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travelguide/pkg/utils"
)

type TokenValidator interface {
	ValidateToken(token string) (*utils.Claims, error)
}

// JWTAuthMiddleware rejects requests without a bearer token (401) or with one
// that fails validation (403).
func JWTAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Access token required")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := validator.ValidateToken(tokenString)
		if err != nil {
			zap.L().Debug("Rejected token", zap.String("trace_id", c.GetString(utils.TraceIDKey)), zap.Error(err))
			utils.RespondError(c, http.StatusForbidden, "Invalid or expired token")
			return
		}

		c.Set(utils.UserIDKey, claims.UserID)
		c.Set(utils.UserEmailKey, claims.Email)
		c.Next()
	}
}
