package middleware

import (
	"Scorekeeper/services/redis"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminRequired gates the moderation surface. A valid token is not
// enough: the session must also have passed the passphrase gate, which
// stores a session-scoped flag in Redis. Logout deletes that flag, so
// impersonation can never survive an identity change.
func AdminRequired(redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := SessionID(c)
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		isAdmin, err := redisClient.IsAdminSession(sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Error checking admin session"})
			return
		}
		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin mode required"})
			return
		}
		c.Next()
	}
}
