package dto

import (
	"time"

	"github.com/yukikurage/legal-case-api/internal/models"
)

// ChatDTO represents one AI exchange in API responses
type ChatDTO struct {
	ID        string    `json:"id"`
	CaseID    string    `json:"case_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

func ToChatDTO(chat models.Chat) ChatDTO {
	return ChatDTO{
		ID:        chat.ID,
		CaseID:    chat.CaseID,
		Message:   chat.Message,
		Response:  chat.Response,
		Timestamp: chat.Timestamp,
	}
}

func ToChatDTOs(chats []models.Chat) []ChatDTO {
	out := make([]ChatDTO, 0, len(chats))
	for _, chat := range chats {
		out = append(out, ToChatDTO(chat))
	}
	return out
}
