package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/radu-bors/Clique-backend/auth"
)

// SessionAuth validates the presented (user, token) pair against the
// session store before any protected handler runs. Credentials come from
// the X-User-ID header plus a Bearer token; websocket clients may pass both
// as query parameters instead.
func SessionAuth(gate *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		// CORS preflight carries no credentials.
		if c.Request.Method == "OPTIONS" {
			c.Next()
			return
		}

		userIDStr := c.GetHeader("X-User-ID")
		if userIDStr == "" {
			userIDStr = c.Query("userId")
		}

		token := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "Invalid authorization header",
					"message": "Format should be: Bearer <token>",
				})
				c.Abort()
				return
			}
			token = parts[1]
		} else {
			token = c.Query("token")
		}

		if userIDStr == "" || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "No session credentials provided",
			})
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(userIDStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid session",
				"message": "User id is not valid",
			})
			c.Abort()
			return
		}

		if !gate.IsSessionValid(c.Request.Context(), userID, token) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid session",
				"message": "Session is missing or expired",
			})
			c.Abort()
			return
		}

		c.Set("userId", userIDStr)
		c.Next()
	}
}
