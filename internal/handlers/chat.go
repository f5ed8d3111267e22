package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/legal-case-api/internal/dto"
	apierrors "github.com/yukikurage/legal-case-api/internal/errors"
	"github.com/yukikurage/legal-case-api/internal/middleware"
	"github.com/yukikurage/legal-case-api/internal/services"
)

// ChatHandler handles the case assistant endpoints
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessage handles POST /api/ai/chat
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req struct {
		Message string `json:"message"`
		CaseID  string `json:"case_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	chat, err := h.chatService.SendMessage(c.Request.Context(), services.SendChatInput{
		OwnerID: userID,
		CaseID:  req.CaseID,
		Message: req.Message,
	})
	if err != nil {
		if respondCaseScopedError(c, err) {
			return
		}
		switch {
		case errors.Is(err, services.ErrMessageRequired), errors.Is(err, services.ErrMessageTooLong):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrAIServiceNotConfigured):
			apierrors.ServiceUnavailable(c, "AI service is not configured")
		default:
			respondInternal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"chat": dto.ToChatDTO(*chat)})
}

// ListChats handles GET /api/ai/chats
func (h *ChatHandler) ListChats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	chats, err := h.chatService.ListChats(c.Request.Context(), userID, c.Query("case_id"))
	if err != nil {
		if !respondCaseScopedError(c, err) {
			respondInternal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"chats": dto.ToChatDTOs(chats)})
}
