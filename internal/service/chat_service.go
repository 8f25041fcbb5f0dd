package service

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/sahan-deakin/something-awesome/internal/cache"
	"github.com/sahan-deakin/something-awesome/internal/chatbot"
)

// ChatService answers chat messages and, for logged-in sessions, records
// the exchange in the transcript cache.
type ChatService struct {
	matcher *chatbot.Matcher
	history *cache.ChatHistory
	sf      singleflight.Group
}

// NewChatService creates a ChatService. If h is nil, transcripts are disabled.
func NewChatService(m *chatbot.Matcher, h *cache.ChatHistory) *ChatService {
	return &ChatService{matcher: m, history: h}
}

// Respond returns the canned reply for message. When sessionToken is
// non-empty and transcripts are enabled, the user line and the bot line
// are appended to the session's transcript; a transcript write failure
// never fails the chat itself.
func (s *ChatService) Respond(ctx context.Context, sessionToken, message string) string {
	reply := s.matcher.Respond(message)
	if s.history != nil && sessionToken != "" {
		_ = s.history.Append(ctx, sessionToken,
			cache.Line{Sender: "user", Text: message},
			cache.Line{Sender: "bot", Text: reply},
		)
	}
	return reply
}

// History returns the transcript for the session, oldest first. Concurrent
// reads for the same session are collapsed into one Redis round-trip.
func (s *ChatService) History(ctx context.Context, sessionToken string) ([]cache.Line, error) {
	if s.history == nil || sessionToken == "" {
		return nil, nil
	}
	v, err, _ := s.sf.Do("history:"+sessionToken, func() (interface{}, error) {
		return s.history.Get(ctx, sessionToken)
	})
	if err != nil {
		return nil, err
	}
	return v.([]cache.Line), nil
}

// ForgetHistory drops the transcript for the session (used on logout).
func (s *ChatService) ForgetHistory(ctx context.Context, sessionToken string) {
	if s.history != nil && sessionToken != "" {
		_ = s.history.Delete(ctx, sessionToken)
	}
}
