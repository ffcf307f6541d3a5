package dto

import (
	"time"

	"github.com/hearthhq/hearth-api/internal/models"
	"github.com/hearthhq/hearth-api/internal/services"
)

// ChatMessageDTO represents one assistant turn in API responses
type ChatMessageDTO struct {
	ID        uint64    `json:"id"`
	FamilyID  uint64    `json:"family_id"`
	UserID    uint64    `json:"user_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
	User      *UserDTO  `json:"user,omitempty"`
}

// ChatSendResponse represents the result of one assistant turn,
// including any calendar event it created.
type ChatSendResponse struct {
	Turn         ChatMessageDTO `json:"turn"`
	CreatedEvent *EventDTO      `json:"created_event,omitempty"`
}

// ChatHistoryResponse represents recent assistant turns in
// chronological order
type ChatHistoryResponse struct {
	Messages []ChatMessageDTO `json:"messages"`
}

// ToChatMessageDTO converts a ChatMessage model to ChatMessageDTO
func ToChatMessageDTO(message models.ChatMessage) ChatMessageDTO {
	dto := ChatMessageDTO{
		ID:        message.ID,
		FamilyID:  message.FamilyID,
		UserID:    message.UserID,
		Message:   message.Message,
		Response:  message.Response,
		CreatedAt: message.CreatedAt,
	}

	// Include user if preloaded
	if message.User.ID != 0 {
		user := ToUserDTO(message.User)
		dto.User = &user
	}

	return dto
}

// ToChatSendResponse converts a send result to ChatSendResponse
func ToChatSendResponse(result services.SendResult) ChatSendResponse {
	response := ChatSendResponse{
		Turn: ToChatMessageDTO(*result.Turn),
	}
	if result.CreatedEvent != nil {
		event := ToEventDTO(*result.CreatedEvent)
		response.CreatedEvent = &event
	}
	return response
}

// ToChatHistoryResponse converts chat messages to ChatHistoryResponse
func ToChatHistoryResponse(messages []models.ChatMessage) ChatHistoryResponse {
	items := make([]ChatMessageDTO, len(messages))
	for i, message := range messages {
		items[i] = ToChatMessageDTO(message)
	}
	return ChatHistoryResponse{Messages: items}
}
