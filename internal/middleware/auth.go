package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"classroom-occupancy-tracker/internal/config"
	"classroom-occupancy-tracker/pkg/utils"
)

const UsernameKey = "username"

// AuthMiddleware enforces a Bearer session token. A missing or malformed
// header is 401; a token that fails signature or expiry checks is 403.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Access denied, no token provided")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], cfg.JWT.Secret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusForbidden, "Invalid token")
			c.Abort()
			return
		}

		c.Set(UsernameKey, claims.Username)

		c.Next()
	}
}

// GetUsername returns the authenticated principal set by AuthMiddleware.
func GetUsername(c *gin.Context) string {
	if v, exists := c.Get(UsernameKey); exists {
		if username, ok := v.(string); ok {
			return username
		}
	}
	return ""
}
