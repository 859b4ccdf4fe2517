package middleware

import (
	"net/http"
	"strings"

	"github.com/emirpasha/vidshare/internal/models"
	"github.com/emirpasha/vidshare/internal/utils"
	"github.com/gin-gonic/gin"
)

// SessionCookieName is the HTTP-only cookie the signed session lives in.
const SessionCookieName = "session"

// SessionAuth validates the session token from the cookie (or a Bearer header
// for non-browser clients) and exposes the session identity to handlers.
func SessionAuth(sessionSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := sessionTokenFrom(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Please login first!",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateSessionToken(tokenString, sessionSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired session",
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("user_role", claims.Role)
		c.Set("claims", claims)

		c.Next()
	}
}

// RequireRole guards a route group behind a role. Runs after SessionAuth.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Please login first!",
			})
			c.Abort()
			return
		}

		if current != role {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Access denied! Only " + string(role) + "s can access this page.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func sessionTokenFrom(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}
	return token
}
