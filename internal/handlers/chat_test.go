package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahan-deakin/something-awesome/internal/dto"
)

func postChat(t *testing.T, env *testEnv, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)
	return w
}

func TestChatRespond(t *testing.T) {
	env := newTestEnv(t)

	w := postChat(t, env, `{"message": "Hello there"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Hello! How can I help you today?", resp.Response)
}

func TestChatRespondFallback(t *testing.T) {
	env := newTestEnv(t)

	w := postChat(t, env, `{"message": "xyzzy"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Response, "not sure I understand")
}

func TestChatWorksForAnonymousUsers(t *testing.T) {
	// /chat is a public endpoint; no session cookie required.
	env := newTestEnv(t)

	w := postChat(t, env, `{"message": "bye"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Goodbye! Feel free to chat again if you need help.", resp.Response)
}

func TestChatMissingMessage(t *testing.T) {
	env := newTestEnv(t)

	w := postChat(t, env, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	w := postChat(t, env, `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatHistoryRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/chat/history")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
