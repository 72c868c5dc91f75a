package middleware

import (
	"net/http"

	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthProviderMiddleware resolves a provider credential and stores the
// provider ID on the request context.
func JWTAuthProviderMiddleware() gin.HandlerFunc {
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
		if err != nil || id == "" || role != "provider" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token. Please log in again.",
			})
			return
		}

		c.Set("providerID", id)
		c.Next()
	}
}
