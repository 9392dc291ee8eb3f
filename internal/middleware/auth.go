package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yashnextsavy/HydrationTracker/internal/utils"
)

const (
	// UserIDKey is the gin context key holding the authenticated user ID.
	UserIDKey = "user_id"
	// TokenCookie is the HttpOnly cookie set on login.
	TokenCookie = "token"
)

// AuthMiddleware accepts the session cookie or an "Authorization: Bearer"
// header and stores the user ID in the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := tokenFromRequest(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired session"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) (string, bool) {
	if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", false
		}
		return strings.TrimSpace(parts[1]), true
	}

	cookie, err := c.Cookie(TokenCookie)
	if err != nil || cookie == "" {
		return "", false
	}
	return cookie, true
}

// UserID returns the authenticated user ID set by AuthMiddleware.
func UserID(c *gin.Context) (int, bool) {
	value, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := value.(int)
	return userID, ok && userID > 0
}
