package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workos/workos-go/v6/pkg/usermanagement"
	"sprintbench.app/core/core/config"
)

// workOSAuth gates requests behind a WorkOS user lookup: the caller sends
// the authenticated WorkOS user ID in the Authorization header, and the
// middleware confirms it resolves to a real user before proceeding.
func workOSAuth(cfg config.AuthConfig) gin.HandlerFunc {
	usermanagement.SetAPIKey(cfg.WorkOSAPIKey)

	return func(c *gin.Context) {
		userID := c.GetHeader("Authorization")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		user, err := usermanagement.GetUser(c.Request.Context(), usermanagement.GetUserOpts{User: userID})
		if err != nil || user.ID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		c.Set("workos_user_id", user.ID)
		c.Next()
	}
}
