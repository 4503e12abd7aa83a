package middleware

import (
	"net/http"
	"os"
	"strings"

	"campusit/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTAuth validates the bearer token and loads the actor's identity into the
// gin context: user_id (uuid.UUID), role (string), and when present in the
// claims, department_id and lab_id (uuid.UUID).
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("role", claims["role"])
		if raw, ok := claims["department_id"].(string); ok {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set("department_id", id)
			}
		}
		if raw, ok := claims["lab_id"].(string); ok {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set("lab_id", id)
			}
		}

		c.Next()
	}
}

// RequireRoles gates a route group to the given roles.
func RequireRoles(roles ...common.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := common.Role(c.GetString("role"))
		for _, role := range roles {
			if actor == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "role " + string(actor) + " is not permitted to access this resource"})
		c.Abort()
	}
}
