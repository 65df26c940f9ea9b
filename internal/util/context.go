package util

import (
	"github.com/gin-gonic/gin"
	"github.com/hearthside/backend/internal/models"
)

// GetUserFromContext extracts the authenticated user from the Gin context.
// Returns the user and true if found. If not (the route was wired without
// the auth middleware), it responds 401 and returns false.
func GetUserFromContext(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		RespondUnauthorized(c)
		return nil, false
	}
	user, ok := value.(*models.User)
	if !ok {
		RespondInternalError(c, "invalid user data in context")
		return nil, false
	}
	return user, true
}
