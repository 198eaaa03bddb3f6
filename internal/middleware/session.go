package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Session keys. The session carries only the login user id, the CSRF token
// and the active purchase id, cart contents are always read from the store.
const (
	SessionName        = "pizzeria_session"
	SessionKeyLogin    = "login"
	SessionKeyCSRF     = "csrf_token"
	SessionKeyPurchase = "purchase_id"
)

// Sessions returns the cookie-backed session middleware
func Sessions(secret string) gin.HandlerFunc {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(SessionName, store)
}

// RequestID tags every request with a unique id for log correlation
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("requestID", requestID)
		c.Header("X-Request-ID", requestID)

		log.WithFields(log.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}).Debug("Handling request")

		c.Next()
	}
}

// LoginUserID reads the authenticated user id from the session.
// The second return value reports whether a user is logged in.
func LoginUserID(c *gin.Context) (uint, bool) {
	session := sessions.Default(c)
	id, ok := session.Get(SessionKeyLogin).(uint)
	return id, ok
}
