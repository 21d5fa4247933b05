package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserIDKey = "userID"
	ContextEmailKey  = "userEmail"
	ContextRolesKey  = "userRoles"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the bearer token and stores the caller's identity on the
// request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			message := "Invalid token"
			if err == auth.ErrExpiredToken {
				message = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)
		c.Set(ContextRolesKey, claims.Roles)
		c.Next()
	}
}

// RoleRequired allows the request through only when the caller holds one of
// the given roles.
func (m *AuthMiddleware) RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerRoles, ok := GetUserRoles(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		for _, required := range roles {
			for _, held := range callerRoles {
				if held == required {
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

// GetUserID returns the authenticated user's id from the request context
func GetUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

// GetUserRoles returns the authenticated user's roles from the request context
func GetUserRoles(c *gin.Context) ([]models.Role, bool) {
	value, exists := c.Get(ContextRolesKey)
	if !exists {
		return nil, false
	}
	roles, ok := value.([]models.Role)
	return roles, ok
}

// HasRole reports whether the authenticated caller holds the role
func HasRole(c *gin.Context, role models.Role) bool {
	roles, ok := GetUserRoles(c)
	if !ok {
		return false
	}
	for _, held := range roles {
		if held == role {
			return true
		}
	}
	return false
}
