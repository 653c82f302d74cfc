// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/pkg/auth"
)

// SessionKey is the gin context key holding the current *auth.Session
const SessionKey = "session"

// SessionSource exposes the session the page is running under
type SessionSource interface {
	Session() *auth.Session
}

// RequireSession rejects requests made while logged out
func RequireSession(source SessionSource, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := source.Session()
		if !sess.Authenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": message,
			})
			c.Abort()
			return
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// GetSessionFromContext returns the session stored by RequireSession
func GetSessionFromContext(c *gin.Context) (*auth.Session, bool) {
	value, exists := c.Get(SessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := value.(*auth.Session)
	return sess, ok
}
