package middleware

import (
	"net/http"
	"strings"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CookieName is the session cookie. Its value is "Bearer <token>".
const CookieName = "access_token"

const bearerPrefix = "Bearer "

// contextUserKey is where the resolved user lives in the gin context.
const contextUserKey = "currentUser"

// AuthRequired validates the session cookie and puts the current user into
// the context. A missing cookie redirects to the login page when
// redirectOnMissing is set (HTML pages) and returns 401 otherwise (mutating
// actions, downloads). A present-but-invalid token is always a 401 so a bad
// session never turns into a silent empty one. The error message never says
// which factor failed.
func AuthRequired(jwtSecret string, db *gorm.DB, redirectOnMissing bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(CookieName)
		if err != nil || raw == "" {
			if redirectOnMissing {
				c.Redirect(http.StatusSeeOther, "/")
			} else {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
			}
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(raw, bearerPrefix)

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
			c.Abort()
			return
		}

		// subject email -> user row; a user deleted after issuance is an
		// authentication failure, not a crash
		var user models.User
		if err := db.Where("LOWER(email) = LOWER(?)", claims.Subject).
			First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query user failed")
			}
			c.Abort()
			return
		}

		c.Set(contextUserKey, &user)
		c.Next()
	}
}

// CurrentUser pulls the authenticated user set by AuthRequired out of the
// context.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
