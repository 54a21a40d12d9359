package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const adminUsernameKey = "admin_username"

// AdminClaims is the payload of the stateless admin session token.
type AdminClaims struct {
	AdminID  int64  `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// RequireAdmin validates the bearer token on admin-only routes. Missing,
// malformed or expired tokens all end the request with 401.
func RequireAdmin(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token required"})
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims := &AdminClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return key, nil
		})
		if err != nil || !token.Valid || claims.AdminID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(adminUsernameKey, claims.Username)
		c.Next()
	}
}

// AdminUsername returns the username stored by RequireAdmin.
func AdminUsername(c *gin.Context) string {
	if v, ok := c.Get(adminUsernameKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
