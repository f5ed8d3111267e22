package repository

import (
	"context"

	"github.com/yukikurage/legal-case-api/internal/collection"
	"github.com/yukikurage/legal-case-api/internal/models"
)

// CollectionCaseRepository is a collection-backed CaseRepository
type CollectionCaseRepository struct {
	cases collection.Collection[models.Case]
}

// NewCaseRepository creates a new CaseRepository
func NewCaseRepository(cases collection.Collection[models.Case]) CaseRepository {
	return &CollectionCaseRepository{cases: cases}
}

func (r *CollectionCaseRepository) Create(ctx context.Context, c *models.Case) error {
	if c.Documents == nil {
		c.Documents = []string{}
	}
	if c.ChatIDs == nil {
		c.ChatIDs = []string{}
	}
	return r.cases.Append(ctx, *c)
}

func (r *CollectionCaseRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Case, error) {
	return r.cases.List(ctx, ownerMatch(ownerID, ""))
}

func (r *CollectionCaseRepository) FindOwned(ctx context.Context, id, ownerID string) (*models.Case, error) {
	c, err := r.cases.FindOne(ctx, collection.Match{
		models.FieldID:          id,
		models.FieldOwnerUserID: ownerID,
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CollectionCaseRepository) AppendDocument(ctx context.Context, id, ownerID, key string) error {
	return r.cases.Update(ctx, id, func(c *models.Case) error {
		if c.OwnerUserID != ownerID {
			return ErrNotFound
		}
		c.Documents = append(c.Documents, key)
		return nil
	})
}

func (r *CollectionCaseRepository) AppendChat(ctx context.Context, id, ownerID, chatID string) error {
	return r.cases.Update(ctx, id, func(c *models.Case) error {
		if c.OwnerUserID != ownerID {
			return ErrNotFound
		}
		c.ChatIDs = append(c.ChatIDs, chatID)
		return nil
	})
}
