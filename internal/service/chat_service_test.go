package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahan-deakin/something-awesome/internal/chatbot"
)

func TestChatServiceRespond(t *testing.T) {
	svc := NewChatService(chatbot.NewDefaultMatcher(), nil)

	assert.Equal(t, "Hello! How can I help you today?",
		svc.Respond(context.Background(), "", "Hello there"))
	assert.Equal(t, chatbot.DefaultFallback,
		svc.Respond(context.Background(), "", "xyzzy"))
}

func TestChatServiceRespondIsStateless(t *testing.T) {
	svc := NewChatService(chatbot.NewDefaultMatcher(), nil)
	ctx := context.Background()

	first := svc.Respond(ctx, "", "hello")
	svc.Respond(ctx, "", "bye")
	again := svc.Respond(ctx, "", "hello")
	assert.Equal(t, first, again)
}

func TestChatServiceHistoryDisabled(t *testing.T) {
	// Without Redis there is no transcript; History is empty, never an error.
	svc := NewChatService(chatbot.NewDefaultMatcher(), nil)

	svc.Respond(context.Background(), "sometoken", "hello")
	lines, err := svc.History(context.Background(), "sometoken")
	require.NoError(t, err)
	assert.Empty(t, lines)
}
