package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	usersports "github.com/pustakahq/bookstore-api/internal/domains/users/ports"
)

// userIDKey is the gin context key holding the authenticated user id.
const userIDKey = "auth.user_id"

// requireAuth verifies the Bearer token and stashes the subject user id.
func requireAuth(tokens usersports.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			respondError(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		userID, err := tokens.Verify(token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func authenticatedUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
