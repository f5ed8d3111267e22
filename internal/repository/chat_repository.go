package repository

import (
	"context"

	"github.com/yukikurage/legal-case-api/internal/collection"
	"github.com/yukikurage/legal-case-api/internal/models"
)

// CollectionChatRepository is a collection-backed ChatRepository
type CollectionChatRepository struct {
	chats collection.Collection[models.Chat]
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(chats collection.Collection[models.Chat]) ChatRepository {
	return &CollectionChatRepository{chats: chats}
}

func (r *CollectionChatRepository) Create(ctx context.Context, chat *models.Chat) error {
	return r.chats.Append(ctx, *chat)
}

func (r *CollectionChatRepository) List(ctx context.Context, filter ChatFilter) ([]models.Chat, error) {
	return r.chats.List(ctx, ownerMatch(filter.OwnerUserID, filter.CaseID))
}
