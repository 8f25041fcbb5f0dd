package chatbot

// DefaultRules is the built-in trigger table. Order matters: the matcher
// scans top to bottom and stops at the first hit.
var DefaultRules = []Rule{
	{Trigger: "hello", Response: "Hello! How can I help you today?"},
	{Trigger: "hi", Response: "Hi there! What can I do for you?"},
	{Trigger: "location", Response: "We are located at 123 Main St, Anytown, Melborne."},
	{Trigger: "business time", Response: "Our business hours are Monday to Friday, 9 AM to 5 PM."},
	{Trigger: "help", Response: "I can help you with basic information. Try asking me about what I can do, or say hello!"},
	{Trigger: "contact", Response: "You can contact us at 0123-456-789 or email us at abc@gmail.com."},
	{Trigger: "bye", Response: "Goodbye! Feel free to chat again if you need help."},
	{Trigger: "thank you", Response: "You're welcome! Is there anything else I can help with?"},
}

// DefaultFallback is returned when no trigger matches.
const DefaultFallback = "I'm not sure I understand. Can you try asking differently? I can help with basic questions and conversations."

// NewDefaultMatcher returns a matcher over the built-in table.
func NewDefaultMatcher() *Matcher {
	return NewMatcher(DefaultRules, DefaultFallback)
}
