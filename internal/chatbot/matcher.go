package chatbot

import "strings"

// Rule pairs a lowercase trigger phrase with its canned response.
type Rule struct {
	Trigger  string
	Response string
}

// Matcher answers free-text messages by substring-matching an ordered
// trigger table. First match wins, so the order of rules is part of the
// contract: "hello" must be checked before "hi" would ever see
// "hello there".
type Matcher struct {
	rules    []Rule
	fallback string
}

// NewMatcher builds a matcher over the given rules. Triggers are
// normalized to lowercase once, at construction.
func NewMatcher(rules []Rule, fallback string) *Matcher {
	rs := make([]Rule, len(rules))
	for i, r := range rules {
		rs[i] = Rule{Trigger: strings.ToLower(r.Trigger), Response: r.Response}
	}
	return &Matcher{rules: rs, fallback: fallback}
}

// Respond returns the response of the first rule whose trigger occurs in
// the message (case-insensitive, substring, not whole-word), or the
// fallback when nothing matches. Stateless.
func (m *Matcher) Respond(message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))
	for _, r := range m.rules {
		if strings.Contains(msg, r.Trigger) {
			return r.Response
		}
	}
	return m.fallback
}
