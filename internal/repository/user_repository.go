package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/legal-case-api/internal/collection"
	"github.com/yukikurage/legal-case-api/internal/models"
)

// CollectionUserRepository is a collection-backed UserRepository
type CollectionUserRepository struct {
	users collection.Collection[models.User]
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(users collection.Collection[models.User]) UserRepository {
	return &CollectionUserRepository{users: users}
}

// Create stores the user unless the email is already registered. The check
// and the write happen atomically.
func (r *CollectionUserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.users.AppendUnique(ctx, *user, collection.Match{models.FieldEmail: user.Email})
	if errors.Is(err, collection.ErrConflict) {
		return ErrEmailTaken
	}
	return err
}

func (r *CollectionUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := r.users.FindOne(ctx, collection.Match{models.FieldEmail: email})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *CollectionUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, err := r.users.FindOne(ctx, collection.Match{models.FieldID: id})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
