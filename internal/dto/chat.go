package dto

// ChatRequest is the JSON body for POST /chat.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse is the JSON reply from POST /chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// ChatLine is one transcript entry returned by GET /chat/history.
type ChatLine struct {
	Sender string `json:"sender"` // "user" or "bot"
	Text   string `json:"text"`
}

// ChatHistoryResponse is the JSON reply from GET /chat/history.
type ChatHistoryResponse struct {
	Items []ChatLine `json:"items"`
}
