package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hearthside/backend/internal/database"
	"github.com/hearthside/backend/internal/models"
	"github.com/hearthside/backend/internal/token"
	"github.com/hearthside/backend/internal/util"
)

// RequireAuth extracts the bearer token, verifies it and resolves the user
// it names, attaching the record to the context for downstream handlers.
// Every failure path produces the same 401 body: the caller learns nothing
// about whether the header was missing, the token bad or expired, or the
// user gone.
func RequireAuth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			abortUnauthorized(c)
			return
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			abortUnauthorized(c)
			return
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set("user", &user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	util.RespondUnauthorized(c)
	c.Abort()
}
