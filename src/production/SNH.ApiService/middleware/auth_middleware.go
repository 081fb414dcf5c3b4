package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwt "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.ApiService/implementation/jwt"
	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

// Key types for request context
type contextKey string

const (
	UserIDContextKey   contextKey = "user_id"
	UserRoleContextKey contextKey = "user_role"
	TokenIDContextKey  contextKey = "token_id"
)

// AuthMiddleware provides middleware functions for authentication and authorization
type AuthMiddleware struct {
	jwtService *jwt.Service
	config     Config
}

// Config holds middleware configuration
type Config struct {
	// HTTP header name for the access token
	AccessTokenHeader string

	// Cookie name for the access token (optional alternative to the header)
	AccessTokenCookie string
}

// DefaultConfig returns a default middleware configuration
func DefaultConfig() Config {
	return Config{
		AccessTokenHeader: "Authorization",
		AccessTokenCookie: "access_token",
	}
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtService *jwt.Service, config Config) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		config:     config,
	}
}

// extractToken gets a token from either header or cookie
func extractToken(r *http.Request, headerName, cookieName string) string {
	token := r.Header.Get(headerName)
	if token != "" {
		if strings.HasPrefix(token, "Bearer ") {
			return strings.TrimPrefix(token, "Bearer ")
		}
		return token
	}

	if cookieName != "" {
		cookie, err := r.Cookie(cookieName)
		if err == nil {
			return cookie.Value
		}
	}

	return ""
}

// Authenticate middleware verifies the access token
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := extractToken(c.Request, m.config.AccessTokenHeader, m.config.AccessTokenCookie)
		if accessToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		accessClaims, err := m.jwtService.ValidateAccessToken(accessToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid access token"})
			c.Abort()
			return
		}

		c.Set(string(UserIDContextKey), accessClaims.UserID)
		c.Set(string(UserRoleContextKey), accessClaims.Role)
		c.Set(string(TokenIDContextKey), accessClaims.TokenID)

		c.Next()
	}
}

// RequireAdmin ensures the user has the admin role
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRole(snhmodels.RoleAdmin)
}

// RequireRole ensures the user has one of the given roles. Admins always
// pass.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, err := GetRoleFromGinContext(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if userRole == snhmodels.RoleAdmin {
			c.Next()
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
		c.Abort()
	}
}

// GetUserFromGinContext retrieves the user ID from the Gin context
func GetUserFromGinContext(c *gin.Context) (string, error) {
	userIDVal, exists := c.Get(string(UserIDContextKey))
	if !exists {
		return "", errors.New("user not found in context")
	}

	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", errors.New("invalid user ID format in context")
	}

	return userID, nil
}

// GetRoleFromGinContext retrieves the user role from the Gin context
func GetRoleFromGinContext(c *gin.Context) (string, error) {
	roleVal, exists := c.Get(string(UserRoleContextKey))
	if !exists {
		return "", errors.New("role not found in context")
	}

	role, ok := roleVal.(string)
	if !ok || role == "" {
		return "", errors.New("invalid role format in context")
	}

	return role, nil
}
