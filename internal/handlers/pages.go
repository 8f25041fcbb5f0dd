package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahan-deakin/something-awesome/internal/auth"
)

// PageHandler renders the server-side pages.
type PageHandler struct{}

// NewPageHandler returns a new PageHandler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Index renders the landing page, reflecting the current user when the
// session cookie is valid.
func (h *PageHandler) Index(c *gin.Context) {
	sess, ok := auth.SessionFromContext(c)
	data := gin.H{
		"title":   "Hello World",
		"message": "Welcome!",
		"user":    nil,
	}
	if ok {
		data["user"] = sess
	}
	c.HTML(http.StatusOK, "index.html", data)
}

// LoginPage renders the login form. Logged-in visitors are sent home.
func (h *PageHandler) LoginPage(c *gin.Context) {
	if _, ok := auth.SessionFromContext(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"title": "Login", "user": nil, "error": nil})
}

// RegisterPage renders the registration form. Logged-in visitors are sent home.
func (h *PageHandler) RegisterPage(c *gin.Context) {
	if _, ok := auth.SessionFromContext(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{"title": "Register", "user": nil, "error": nil})
}

// Profile renders the account page. Reached only through RequireSession.
func (h *PageHandler) Profile(c *gin.Context) {
	sess, _ := auth.SessionFromContext(c)
	c.HTML(http.StatusOK, "profile.html", gin.H{"title": "Profile", "user": sess})
}
