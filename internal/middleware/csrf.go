package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/crustco/pizzeria-api/internal/models"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// CSRFHeader is the primary transport for the token, the form field is the
// fallback for classic form posts
const (
	CSRFHeader    = "X-CSRF-Token"
	CSRFFormField = "csrf_token"
)

// CSRF issues a per-session random token and validates it on every
// state-changing request. A missing or mismatching token aborts the request
// with 403, there is no graceful recovery (fail-closed).
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := EnsureCSRFToken(c)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		sent := c.GetHeader(CSRFHeader)
		if sent == "" {
			sent = c.PostForm(CSRFFormField)
		}

		if sent == "" || subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
			log.WithFields(log.Fields{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
			}).Warn("CSRF token mismatch")
			c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrCSRFInvalid, "Invalid CSRF token"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// EnsureCSRFToken returns the session's CSRF token, generating and storing a
// new 256-bit one on first use
func EnsureCSRFToken(c *gin.Context) string {
	session := sessions.Default(c)
	if token, ok := session.Get(SessionKeyCSRF).(string); ok && token != "" {
		return token
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		log.WithError(err).Fatal("Failed to generate CSRF token")
	}
	token := hex.EncodeToString(buf)

	session.Set(SessionKeyCSRF, token)
	if err := session.Save(); err != nil {
		log.WithError(err).Error("Failed to persist CSRF token in session")
	}
	return token
}
