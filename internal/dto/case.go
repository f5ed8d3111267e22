package dto

import (
	"time"

	"github.com/yukikurage/legal-case-api/internal/models"
)

// CaseDTO represents a case in API responses
type CaseDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Documents []string  `json:"documents"`
	ChatIDs   []string  `json:"chat_ids"`
}

func ToCaseDTO(c models.Case) CaseDTO {
	return CaseDTO{
		ID:        c.ID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		Documents: nonNil(c.Documents),
		ChatIDs:   nonNil(c.ChatIDs),
	}
}

func ToCaseDTOs(cases []models.Case) []CaseDTO {
	out := make([]CaseDTO, 0, len(cases))
	for _, c := range cases {
		out = append(out, ToCaseDTO(c))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
