package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahan-deakin/something-awesome/internal/auth"
	"github.com/sahan-deakin/something-awesome/internal/domain"
	"github.com/sahan-deakin/something-awesome/internal/dto"
	"github.com/sahan-deakin/something-awesome/internal/service"
	"github.com/sahan-deakin/something-awesome/internal/session"
)

// User-facing error strings. Kept generic on purpose: a login failure
// never says whether the username or the password was wrong, and storage
// failures never leak internals.
const (
	errMsgInvalidCredentials = "Invalid username or password"
	errMsgDatabase           = "Database error occurred"
	errMsgPasswordMismatch   = "Passwords do not match"
	errMsgPasswordTooShort   = "Password must be at least 6 characters long"
	errMsgDuplicate          = "Username or email already exists"
	errMsgCreateFailed       = "Error creating user"
)

// AuthHandler handles login, register and logout.
type AuthHandler struct {
	sessions session.Store
	userSvc  *service.UserService
	chatSvc  *service.ChatService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(sessions session.Store, userSvc *service.UserService, chatSvc *service.ChatService) *AuthHandler {
	return &AuthHandler{sessions: sessions, userSvc: userSvc, chatSvc: chatSvc}
}

// Login checks credentials, issues a session and redirects home; on
// failure the login form is re-rendered with an inline error.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	_ = c.ShouldBind(&form)

	user, err := h.userSvc.ValidateCredentials(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		msg := errMsgDatabase
		if errors.Is(err, service.ErrInvalidCredentials) {
			msg = errMsgInvalidCredentials
		}
		h.renderLoginError(c, msg)
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), domain.Session{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		h.renderLoginError(c, errMsgDatabase)
		return
	}

	c.SetCookie(auth.CookieName, token, 0, "/", "", false, true) // httpOnly
	c.Redirect(http.StatusFound, "/")
}

// Register validates the form, creates the user and redirects to the
// login page. Registration does not log the user in.
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	_ = c.ShouldBind(&form)

	// Transport-level checks first: they must fail before storage is touched.
	if form.Password != form.ConfirmPassword {
		h.renderRegisterError(c, errMsgPasswordMismatch)
		return
	}

	_, err := h.userSvc.Register(c.Request.Context(), form.Username, form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordTooShort):
			h.renderRegisterError(c, errMsgPasswordTooShort)
		case errors.Is(err, service.ErrDuplicateUser):
			h.renderRegisterError(c, errMsgDuplicate)
		case errors.Is(err, service.ErrInvalidCredentials):
			h.renderRegisterError(c, errMsgCreateFailed)
		default:
			h.renderRegisterError(c, errMsgDatabase)
		}
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// Logout deletes the session and its chat transcript, clears the cookie
// and redirects home. A missing cookie is a no-op logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(auth.CookieName)
	if err == nil && token != "" {
		_ = h.sessions.Delete(c.Request.Context(), token)
		if h.chatSvc != nil {
			h.chatSvc.ForgetHistory(c.Request.Context(), token)
		}
	}
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) renderLoginError(c *gin.Context, msg string) {
	c.HTML(http.StatusOK, "login.html", gin.H{"title": "Login", "user": nil, "error": msg})
}

func (h *AuthHandler) renderRegisterError(c *gin.Context, msg string) {
	c.HTML(http.StatusOK, "register.html", gin.H{"title": "Register", "user": nil, "error": msg})
}
