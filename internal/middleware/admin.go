package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/hearthside/backend/internal/models"
	"github.com/hearthside/backend/internal/util"
)

// RequireAdmin ensures the already-authenticated caller has admin
// privileges. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user")
		if !exists {
			util.RespondUnauthorized(c)
			c.Abort()
			return
		}

		user, ok := value.(*models.User)
		if !ok {
			util.RespondUnauthorized(c)
			c.Abort()
			return
		}

		if !user.IsAdmin {
			util.RespondForbidden(c, "admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
