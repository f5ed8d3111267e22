package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/yukikurage/legal-case-api/internal/collection"
	"github.com/yukikurage/legal-case-api/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist or belongs to
	// another user. Callers cannot tell the two apart.
	ErrNotFound = collection.ErrNotFound
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("user repository: email already registered")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create stores a new user, failing with ErrEmailTaken on duplicates
	Create(ctx context.Context, user *models.User) error

	// FindByEmail finds a user by exact email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// CaseRepository defines the interface for case data access.
// Every read and write is scoped to an owner.
type CaseRepository interface {
	Create(ctx context.Context, c *models.Case) error

	// ListByOwner lists the owner's cases in creation order
	ListByOwner(ctx context.Context, ownerID string) ([]models.Case, error)

	// FindOwned returns the case only when ownerID owns it
	FindOwned(ctx context.Context, id, ownerID string) (*models.Case, error)

	// AppendDocument appends a storage key to the case's document list
	AppendDocument(ctx context.Context, id, ownerID, key string) error

	// AppendChat appends a chat id to the case's chat list
	AppendChat(ctx context.Context, id, ownerID, chatID string) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	OwnerUserID string
	CaseID      string
}

// ChatRepository defines the interface for chat data access
type ChatRepository interface {
	Create(ctx context.Context, chat *models.Chat) error
	List(ctx context.Context, filter ChatFilter) ([]models.Chat, error)
}

// ChatFilter holds filtering options for listing chats
type ChatFilter struct {
	OwnerUserID string
	CaseID      string
}

// Repositories bundles the repositories the services need.
type Repositories struct {
	Users UserRepository
	Cases CaseRepository
	Tasks TaskRepository
	Chats ChatRepository
}

// NewFileRepositories stores every collection as a JSON file in dir.
func NewFileRepositories(dir string, log zerolog.Logger) (*Repositories, error) {
	users, err := collection.NewFileCollection[models.User](dir, "users", log)
	if err != nil {
		return nil, err
	}
	cases, err := collection.NewFileCollection[models.Case](dir, "cases", log)
	if err != nil {
		return nil, err
	}
	tasks, err := collection.NewFileCollection[models.Task](dir, "tasks", log)
	if err != nil {
		return nil, err
	}
	chats, err := collection.NewFileCollection[models.Chat](dir, "chats", log)
	if err != nil {
		return nil, err
	}
	return New(users, cases, tasks, chats), nil
}

// NewGormRepositories stores every collection in its own table. The schema
// must already be migrated.
func NewGormRepositories(db *gorm.DB) *Repositories {
	return New(
		collection.NewGormCollection[models.User](db, "created_at"),
		collection.NewGormCollection[models.Case](db, "id"),
		collection.NewGormCollection[models.Task](db, "id"),
		collection.NewGormCollection[models.Chat](db, "id"),
	)
}

// New wires repositories over arbitrary collections.
func New(
	users collection.Collection[models.User],
	cases collection.Collection[models.Case],
	tasks collection.Collection[models.Task],
	chats collection.Collection[models.Chat],
) *Repositories {
	return &Repositories{
		Users: NewUserRepository(users),
		Cases: NewCaseRepository(cases),
		Tasks: NewTaskRepository(tasks),
		Chats: NewChatRepository(chats),
	}
}

func ownerMatch(ownerID, caseID string) collection.Match {
	m := collection.Match{models.FieldOwnerUserID: ownerID}
	if caseID != "" {
		m[models.FieldCaseID] = caseID
	}
	return m
}
