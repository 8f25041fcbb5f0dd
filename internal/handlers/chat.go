package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahan-deakin/something-awesome/internal/auth"
	"github.com/sahan-deakin/something-awesome/internal/dto"
	"github.com/sahan-deakin/something-awesome/internal/service"
)

// ChatHandler serves the chatbot endpoints.
type ChatHandler struct {
	svc *service.ChatService
}

// NewChatHandler returns a new ChatHandler.
func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Respond godoc
// @Summary      Chat with the bot
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ChatRequest  true  "Message"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  map[string]string
// @Router       /chat [post]
func (h *ChatHandler) Respond(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var token string
	if sess, ok := auth.SessionFromContext(c); ok {
		token = sess.Token
	}
	reply := h.svc.Respond(c.Request.Context(), token, req.Message)
	c.JSON(http.StatusOK, dto.ChatResponse{Response: reply})
}

// History godoc
// @Summary      Chat transcript for the current session
// @Tags         chat
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ChatHistoryResponse
// @Failure      500  {object}  map[string]string
// @Router       /chat/history [get]
func (h *ChatHandler) History(c *gin.Context) {
	sess, _ := auth.SessionFromContext(c)
	lines, err := h.svc.History(c.Request.Context(), sess.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	items := make([]dto.ChatLine, len(lines))
	for i, l := range lines {
		items[i] = dto.ChatLine{Sender: l.Sender, Text: l.Text}
	}
	c.JSON(http.StatusOK, dto.ChatHistoryResponse{Items: items})
}
