package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sahan-deakin/something-awesome/internal/auth"
	"github.com/sahan-deakin/something-awesome/internal/chatbot"
	dom "github.com/sahan-deakin/something-awesome/internal/domain"
	"github.com/sahan-deakin/something-awesome/internal/service"
	"github.com/sahan-deakin/something-awesome/internal/session"
	"github.com/sahan-deakin/something-awesome/web"
)

// memUserRepo is the minimal in-memory UserRepo for handler tests.
type memUserRepo struct {
	mu          sync.Mutex
	nextID      int64
	users       []dom.User
	createCalls int
}

func (f *memUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (f *memUserRepo) GetByUsernameOrEmail(_ context.Context, username, email string) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (f *memUserRepo) Create(_ context.Context, username, email, passwordHash string) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return dom.User{}, &pgconn.PgError{Code: "23505"}
		}
	}
	f.nextID++
	u := dom.User{ID: f.nextID, Username: username, Email: email, PasswordHash: passwordHash}
	f.users = append(f.users, u)
	return u, nil
}

type testEnv struct {
	router *gin.Engine
	repo   *memUserRepo
	store  *session.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &memUserRepo{}
	store := session.NewMemoryStore()
	userSvc := service.NewUserService(repo, auth.NewHasher(bcrypt.MinCost))
	chatSvc := service.NewChatService(chatbot.NewDefaultMatcher(), nil)

	pageHandler := NewPageHandler()
	authHandler := NewAuthHandler(store, userSvc, chatSvc)
	chatHandler := NewChatHandler(chatSvc)

	r := gin.New()
	r.SetHTMLTemplate(web.Templates())
	r.Use(auth.CurrentUser(store))
	r.GET("/", pageHandler.Index)
	r.GET("/login", pageHandler.LoginPage)
	r.GET("/register", pageHandler.RegisterPage)
	r.POST("/login", authHandler.Login)
	r.POST("/register", authHandler.Register)
	r.POST("/logout", authHandler.Logout)
	r.POST("/chat", chatHandler.Respond)
	protected := r.Group("", auth.RequireSession())
	protected.GET("/profile", pageHandler.Profile)
	protected.GET("/chat/history", chatHandler.History)

	return &testEnv{router: r, repo: repo, store: store}
}

func (e *testEnv) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	e.router.ServeHTTP(w, req)
	return w
}

func registerForm(username, email, password, confirm string) url.Values {
	return url.Values{
		"username":        {username},
		"email":           {email},
		"password":        {password},
		"confirmPassword": {confirm},
	}
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	res := w.Result()
	for _, c := range res.Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func TestRegisterSuccessRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.postForm("/register", registerForm("alice", "alice@example.com", "secret123", "secret123"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Nil(t, sessionCookie(w), "registration must not log the user in")
}

func TestRegisterPasswordMismatchFailsBeforeStorage(t *testing.T) {
	env := newTestEnv(t)

	w := env.postForm("/register", registerForm("alice", "alice@example.com", "secret123", "different"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match")
	assert.Equal(t, 0, env.repo.createCalls, "storage must not be touched")
}

func TestRegisterShortPassword(t *testing.T) {
	env := newTestEnv(t)

	w := env.postForm("/register", registerForm("alice", "alice@example.com", "12345", "12345"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Password must be at least 6 characters long")
	assert.Equal(t, 0, env.repo.createCalls)
}

func TestRegisterDuplicateRendersError(t *testing.T) {
	env := newTestEnv(t)

	w := env.postForm("/register", registerForm("alice", "alice@example.com", "secret123", "secret123"))
	require.Equal(t, http.StatusFound, w.Code)

	w = env.postForm("/register", registerForm("alice", "other@example.com", "secret123", "secret123"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Username or email already exists")
}

func TestLoginSetsSessionCookieAndRedirects(t *testing.T) {
	env := newTestEnv(t)
	env.postForm("/register", registerForm("alice", "alice@example.com", "secret123", "secret123"))

	w := env.postForm("/login", url.Values{"username": {"alice"}, "password": {"secret123"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	// The issued token resolves to the registered identity.
	sess, ok, err := env.store.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alice", sess.Username)
	assert.Equal(t, "alice@example.com", sess.Email)
}

func TestLoginWrongPasswordRendersGenericError(t *testing.T) {
	env := newTestEnv(t)
	env.postForm("/register", registerForm("alice", "alice@example.com", "secret123", "secret123"))

	wrongPass := env.postForm("/login", url.Values{"username": {"alice"}, "password": {"nope456"}})
	unknown := env.postForm("/login", url.Values{"username": {"ghost"}, "password": {"secret123"}})

	for _, w := range []*httptest.ResponseRecorder{wrongPass, unknown} {
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid username or password")
		assert.Nil(t, sessionCookie(w))
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	env := newTestEnv(t)
	env.postForm("/register", registerForm("alice", "alice@example.com", "secret123", "secret123"))
	login := env.postForm("/login", url.Values{"username": {"alice"}, "password": {"secret123"}})
	cookie := sessionCookie(login)
	require.NotNil(t, cookie)

	// Logged in: /profile is reachable.
	w := env.get("/profile", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.postForm("/logout", url.Values{}, cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	cleared := sessionCookie(w)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0, "cookie must be cleared")

	// The old token is now unauthenticated.
	w = env.get("/profile", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestIndexReflectsCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	env.postForm("/register", registerForm("alice", "alice@example.com", "secret123", "secret123"))
	login := env.postForm("/login", url.Values{"username": {"alice"}, "password": {"secret123"}})
	cookie := sessionCookie(login)
	require.NotNil(t, cookie)

	anon := env.get("/")
	assert.Equal(t, http.StatusOK, anon.Code)
	assert.NotContains(t, anon.Body.String(), "alice")

	loggedIn := env.get("/", cookie)
	assert.Equal(t, http.StatusOK, loggedIn.Code)
	assert.Contains(t, loggedIn.Body.String(), "alice")
}

func TestLoginPageRedirectsWhenLoggedIn(t *testing.T) {
	env := newTestEnv(t)
	env.postForm("/register", registerForm("alice", "alice@example.com", "secret123", "secret123"))
	login := env.postForm("/login", url.Values{"username": {"alice"}, "password": {"secret123"}})
	cookie := sessionCookie(login)
	require.NotNil(t, cookie)

	for _, path := range []string{"/login", "/register"} {
		w := env.get(path, cookie)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	}
}
