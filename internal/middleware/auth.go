package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ctlfx/console/internal/session"
)

const (
	// SessionCookie is how browsers carry the console session token; an
	// Authorization bearer header works as well.
	SessionCookie = "console_session"

	sessionKey = "console_session_record"
)

// SessionAuth is the route guard: every guarded request must resolve to
// a stored session, otherwise the browser is told to go back to login.
func SessionAuth(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				tokenStr = cookie
			}
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "unauthenticated",
				"redirect": "/login",
			})
			return
		}

		sess, err := manager.Resolve(c.Request.Context(), tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "session_expired",
				"redirect": "/login",
			})
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session the guard attached to the request.
func CurrentSession(c *gin.Context) (session.Session, bool) {
	val, exists := c.Get(sessionKey)
	if !exists {
		return session.Session{}, false
	}
	sess, ok := val.(session.Session)
	return sess, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
