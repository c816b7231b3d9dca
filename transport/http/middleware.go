package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cybermonitor-rd/sentinel/service"
)

// Context keys set by the auth middleware
const (
	ContextSubjectKey = "subject"
	ContextRoleKey    = "role"
)

// AuthMiddleware creates middleware that validates bearer session tokens.
// Every validation failure yields the same uniform rejection before any
// downstream collaborator is reached.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")

		// Check if the Authorization header is present and in correct format
		if len(auth) < 8 || auth[:7] != "Bearer " {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		token := auth[7:]

		session, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(ContextSubjectKey, session.Subject)
		c.Set(ContextRoleKey, session.Role)

		c.Next()
	}
}
