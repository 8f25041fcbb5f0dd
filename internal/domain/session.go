package domain

// Session is the identity attached to a logged-in browser.
// It lives in the session store only, never in Postgres.
type Session struct {
	Token    string `json:"-"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
