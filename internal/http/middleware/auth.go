package middleware

import (
	"net/http"
	"strings"

	"github.com/sasazame/todo-app-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Context keys set for authenticated requests.
const (
	ContextUserKey   = "user"
	ContextUserIDKey = "user_id"
)

// Auth resolves the Authorization bearer token into a user identity and
// stores it on the request context. Missing, malformed, expired or
// orphaned tokens all reject with 401 UNAUTHENTICATED.
func Auth(resolver *service.IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHENTICATED",
				"message": "missing bearer token",
			})
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHENTICATED",
				"message": "invalid or expired token",
			})
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}
