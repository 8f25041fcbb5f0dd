package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahan-deakin/something-awesome/internal/domain"
	"github.com/sahan-deakin/something-awesome/internal/session"
)

// CookieName is the session cookie carried by the browser.
const CookieName = "sessionId"

const contextKeySession = "session"

// SessionFromContext returns the session resolved by CurrentUser and
// whether one is present.
func SessionFromContext(c *gin.Context) (domain.Session, bool) {
	v, ok := c.Get(contextKeySession)
	if !ok {
		return domain.Session{}, false
	}
	sess, ok := v.(domain.Session)
	return sess, ok
}

// CurrentUser resolves the sessionId cookie on every request and, when it
// maps to a live session, attaches the session to the gin context. An
// absent or stale cookie just means an anonymous request; lookup errors
// are treated the same way so a flaky store never locks users out of
// public pages.
func CurrentUser(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err == nil && token != "" {
			if sess, ok, err := store.Get(c.Request.Context(), token); err == nil && ok {
				c.Set(contextKeySession, sess)
			}
		}
		c.Next()
	}
}

// RequireSession gates protected pages: without a session resolved by
// CurrentUser the request is redirected to the login page and the handler
// never runs.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFromContext(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
