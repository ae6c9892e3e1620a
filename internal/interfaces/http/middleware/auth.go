// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/restaurant-storefront/internal/config"
	"github.com/your-org/restaurant-storefront/internal/domain/customer"
	"github.com/your-org/restaurant-storefront/internal/pkg/auth"
)

// AuthMiddleware requires a valid platform access token
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		// Get Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		// Extract token from header
		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		// Validate access token
		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		// Store customer information in context
		c.Set("customer", claims.Customer())
		c.Set("access_token", tokenString)
		c.Set("is_staff", claims.IsStaff)

		c.Next()
	}
}

// OptionalAuthMiddleware attaches the customer identity when a valid token
// is present, and continues anonymously otherwise.
func OptionalAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// No auth header, continue without authentication
			c.Next()
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			// Invalid token on an optional route is treated as anonymous
			c.Next()
			return
		}

		c.Set("customer", claims.Customer())
		c.Set("access_token", tokenString)
		c.Set("is_staff", claims.IsStaff)

		c.Next()
	}
}

// GetCustomerFromContext extracts the authenticated customer, if any
func GetCustomerFromContext(c *gin.Context) (*customer.Customer, bool) {
	value, exists := c.Get("customer")
	if !exists {
		return nil, false
	}
	cust, ok := value.(*customer.Customer)
	return cust, ok
}

// GetAccessTokenFromContext extracts the raw bearer token, if any
func GetAccessTokenFromContext(c *gin.Context) string {
	value, exists := c.Get("access_token")
	if !exists {
		return ""
	}
	token, _ := value.(string)
	return token
}
