package middleware

import (
	"net/http"
	"strings"

	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// bearerToken extracts the bearer credential from the Authorization header.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// JWTAuthSubjectMiddleware resolves a subject credential and stores the
// subject ID on the request context.
func JWTAuthSubjectMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not Authorized. Please log in again.",
			})
			return
		}

		id, role, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || id == "" || role != "subject" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token. Please log in again.",
			})
			return
		}

		c.Set("subjectID", id)
		c.Next()
	}
}
