package middlewares

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"restaurants/models"
	"restaurants/services"
)

const (
	CurrentUserIDKey   = "currentUserID"
	CurrentUserRoleKey = "currentUserRole"
)

// Allowed reports whether caller may use a route restricted to required.
// An empty required list admits any authenticated caller.
func Allowed(required []models.Role, caller models.Role) bool {
	if !caller.Valid() {
		return false
	}
	if len(required) == 0 {
		return true
	}
	for _, role := range required {
		if role == caller {
			return true
		}
	}
	return false
}

func AuthMiddleware(secret string, requiredRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Authorization header is missing"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		info, err := services.ParseToken(tokenString, secret)
		if err != nil {
			log.Printf("[AUTH] rejected token from %s: %v", c.ClientIP(), err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Invalid token"})
			return
		}

		if !Allowed(requiredRoles, info.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": 0, "mess": "You do not have access to this resource"})
			return
		}

		c.Set(CurrentUserIDKey, info.UserId)
		c.Set(CurrentUserRoleKey, info.Role)
		c.Next()
	}
}

// CurrentUser returns the caller stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (uint, models.Role, bool) {
	id, ok := c.Get(CurrentUserIDKey)
	if !ok {
		return 0, "", false
	}
	role, _ := c.Get(CurrentUserRoleKey)
	userID, _ := id.(uint)
	userRole, _ := role.(models.Role)
	return userID, userRole, true
}
