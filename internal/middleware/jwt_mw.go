package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/TheCyberMayor/NC4A-NATDB/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthAdminKey = "authAdminID"
	AuthRoleKey  = "authRole"
)

// JWTAuthMiddleware verifies the bearer token and attaches the decoded
// identity to the request context
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication token required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid authorization header format"})
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			message := "Invalid authentication token"
			if errors.Is(err, utils.ErrExpiredToken) {
				message = "Authentication token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
			return
		}

		c.Set(AuthAdminKey, claims.AdminID)
		c.Set(AuthRoleKey, claims.Role)

		c.Next()
	}
}
