package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountChecker interface to avoid import cycle
type AccountChecker interface {
	IsAccountActive(userID uuid.UUID) (bool, error)
}

// ActiveAccount blocks requests from accounts that have been deactivated
// after their token was issued (e.g. a declined ACCOUNT_APPROVAL).
func ActiveAccount(checker AccountChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDInterface, exists := c.Get("user_id")
		if !exists {
			c.Next()
			return
		}

		userID, ok := userIDInterface.(uuid.UUID)
		if !ok {
			log.Printf("⚠️ Invalid user_id type in context: %T", userIDInterface)
			c.Next()
			return
		}

		active, err := checker.IsAccountActive(userID)
		if err != nil {
			// Log error but don't block request
			log.Printf("❌ Error checking account state for user %s: %v", userID.String(), err)
			c.Next()
			return
		}
		if !active {
			c.JSON(http.StatusForbidden, gin.H{"error": "account is no longer active"})
			c.Abort()
			return
		}

		c.Next()
	}
}
