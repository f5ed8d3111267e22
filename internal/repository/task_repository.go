package repository

import (
	"context"

	"github.com/yukikurage/legal-case-api/internal/collection"
	"github.com/yukikurage/legal-case-api/internal/models"
)

// CollectionTaskRepository is a collection-backed TaskRepository
type CollectionTaskRepository struct {
	tasks collection.Collection[models.Task]
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(tasks collection.Collection[models.Task]) TaskRepository {
	return &CollectionTaskRepository{tasks: tasks}
}

func (r *CollectionTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.tasks.Append(ctx, *task)
}

// List returns the owner's tasks, optionally narrowed to one case
func (r *CollectionTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	return r.tasks.List(ctx, ownerMatch(filter.OwnerUserID, filter.CaseID))
}
