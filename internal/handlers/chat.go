package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hearthhq/hearth-api/internal/dto"
	apierrors "github.com/hearthhq/hearth-api/internal/errors"
	"github.com/hearthhq/hearth-api/internal/middleware"
	"github.com/hearthhq/hearth-api/internal/services"
	"github.com/hearthhq/hearth-api/internal/utils"
)

// ChatHandler coordinates assistant chat HTTP handlers.
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// GetHistory returns the family's recent assistant turns, oldest first.
// With a page query parameter it returns paginated scrollback instead,
// newest first.
func (h *ChatHandler) GetHistory(c *gin.Context) {
	family, ok := middleware.GetFamily(c)
	if !ok {
		apierrors.InternalError(c, "Family not found in context")
		return
	}

	if c.Query("page") != "" {
		params := utils.GetPaginationParams(c)
		messages, total, err := h.chatService.HistoryPage(family.ID, params)
		if err != nil {
			respondChatError(c, err)
			return
		}

		response := dto.ToChatHistoryResponse(messages)
		c.JSON(http.StatusOK, gin.H{
			"messages": response.Messages,
			"pagination": utils.PaginationResponse{
				Page:  params.Page,
				Limit: params.Limit,
				Total: total,
			},
		})
		return
	}

	messages, err := h.chatService.History(family.ID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChatHistoryResponse(messages))
}

// SendMessage runs one assistant turn for the current user.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	family, ok := middleware.GetFamily(c)
	if !ok {
		apierrors.InternalError(c, "Family not found in context")
		return
	}

	type SendMessageRequest struct {
		Message string `json:"message" binding:"required"`
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.chatService.Send(c.Request.Context(), family.ID, userID, req.Message)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChatSendResponse(*result))
}

func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMessageRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAssistantNotConfigured):
		apierrors.ServiceUnavailable(c, "Assistant is not configured. Please set OPENAI_API_KEY environment variable.")
	case errors.Is(err, services.ErrAssistantFailed):
		apierrors.BadGateway(c, "Assistant request failed")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
