package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"agendabot/utils"
)

// AdminAuthMiddleware validates the bearer token issued by the admin login
// endpoint.
func AdminAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, err := utils.ExtractSubjectFromToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("adminSubject", subject)
		c.Set("isAdmin", true)
		c.Next()
	}
}
