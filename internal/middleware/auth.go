package middleware

import (
	"net/http"

	"github.com/crustco/pizzeria-api/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Authenticated requires a logged-in session and loads the user's id and
// role into the request context. The role is looked up fresh on every
// request so a demoted admin loses access immediately.
func Authenticated(users services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := LoginUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			c.Abort()
			return
		}

		user, err := users.GetUserByID(userID)
		if err != nil {
			// Stale session pointing at a deleted user, clear it
			log.WithField("user_id", userID).Warn("Session user not found, clearing session")
			session := sessions.Default(c)
			session.Clear()
			if err := session.Save(); err != nil {
				log.WithError(err).Error("Failed to clear session")
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			c.Abort()
			return
		}

		c.Set("userID", user.ID)
		c.Set("userRole", user.Role)
		c.Next()
	}
}
