package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/yukikurage/legal-case-api/internal/constants"
	"github.com/yukikurage/legal-case-api/internal/models"
	"github.com/yukikurage/legal-case-api/internal/repository"
	"github.com/yukikurage/legal-case-api/internal/utils"
)

var (
	ErrMessageRequired        = errors.New("message is required")
	ErrMessageTooLong         = errors.New("message is too long")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAIRequestFailed        = errors.New("AI service request failed")
)

// ChatPrompt is what the assistant sees for one exchange.
type ChatPrompt struct {
	CaseTitle string
	History   []models.Chat
	Message   string
}

// ChatResponder produces the assistant's reply.
type ChatResponder interface {
	Respond(ctx context.Context, prompt ChatPrompt) (string, error)
}

// ChatService records AI exchanges on cases
type ChatService struct {
	chatRepo  repository.ChatRepository
	caseRepo  repository.CaseRepository
	responder ChatResponder
	log       zerolog.Logger
	now       func() time.Time
}

// NewChatService creates a new ChatService. A nil responder disables
// sending messages; listing still works.
func NewChatService(chatRepo repository.ChatRepository, caseRepo repository.CaseRepository, responder ChatResponder, log zerolog.Logger) *ChatService {
	return &ChatService{
		chatRepo:  chatRepo,
		caseRepo:  caseRepo,
		responder: responder,
		log:       log.With().Str("component", "chat").Logger(),
		now:       time.Now,
	}
}

// SendChatInput represents one user message.
type SendChatInput struct {
	OwnerID string
	CaseID  string
	Message string
}

// SendMessage asks the assistant and stores the exchange on the case.
func (s *ChatService) SendMessage(ctx context.Context, input SendChatInput) (*models.Chat, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrMessageRequired
	}
	if utf8.RuneCountInString(message) > constants.MaxChatMessageLength {
		return nil, ErrMessageTooLong
	}
	c, err := requireOwnedCase(ctx, s.caseRepo, input.OwnerID, input.CaseID)
	if err != nil {
		return nil, err
	}
	if s.responder == nil {
		return nil, ErrAIServiceNotConfigured
	}

	history, err := s.chatRepo.List(ctx, repository.ChatFilter{OwnerUserID: input.OwnerID, CaseID: input.CaseID})
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	if len(history) > constants.MaxChatHistoryTurns {
		history = history[len(history)-constants.MaxChatHistoryTurns:]
	}

	response, err := s.responder.Respond(ctx, ChatPrompt{
		CaseTitle: c.Title,
		History:   history,
		Message:   message,
	})
	if err != nil {
		s.log.Error().Err(err).Str("case_id", input.CaseID).Msg("assistant request failed")
		return nil, fmt.Errorf("%w: %v", ErrAIRequestFailed, err)
	}

	chat := &models.Chat{
		ID:          utils.NewRecordID(),
		OwnerUserID: input.OwnerID,
		CaseID:      input.CaseID,
		Message:     message,
		Response:    response,
		Timestamp:   s.now().UTC(),
	}
	if err := s.chatRepo.Create(ctx, chat); err != nil {
		return nil, fmt.Errorf("failed to store chat: %w", err)
	}
	if err := s.caseRepo.AppendChat(ctx, input.CaseID, input.OwnerID, chat.ID); err != nil {
		return nil, fmt.Errorf("failed to link chat to case: %w", err)
	}
	return chat, nil
}

// ListChats returns the owner's chats, optionally narrowed to one owned case.
func (s *ChatService) ListChats(ctx context.Context, ownerID, caseID string) ([]models.Chat, error) {
	if caseID != "" {
		if _, err := requireOwnedCase(ctx, s.caseRepo, ownerID, caseID); err != nil {
			return nil, err
		}
	}
	chats, err := s.chatRepo.List(ctx, repository.ChatFilter{OwnerUserID: ownerID, CaseID: caseID})
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return chats, nil
}
