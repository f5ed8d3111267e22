package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/legal-case-api/internal/models"
	"github.com/yukikurage/legal-case-api/internal/repository"
	"github.com/yukikurage/legal-case-api/internal/utils"
)

var ErrDocumentRequired = errors.New("document is required")

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	caseRepo repository.CaseRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, caseRepo repository.CaseRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		caseRepo: caseRepo,
		now:      time.Now,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	OwnerID     string
	CaseID      string
	Document    string
	Description string
}

// CreateTask creates a pending task on a case the owner holds
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	document := strings.TrimSpace(input.Document)
	if document == "" {
		return nil, ErrDocumentRequired
	}
	if _, err := requireOwnedCase(ctx, s.caseRepo, input.OwnerID, input.CaseID); err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:          utils.NewRecordID(),
		OwnerUserID: input.OwnerID,
		CaseID:      input.CaseID,
		Document:    document,
		Description: strings.TrimSpace(input.Description),
		Status:      models.TaskStatusPending,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// ListTasks returns the owner's tasks. A non-empty caseID must name a case
// the owner holds.
func (s *TaskService) ListTasks(ctx context.Context, ownerID, caseID string) ([]models.Task, error) {
	if caseID != "" {
		if _, err := requireOwnedCase(ctx, s.caseRepo, ownerID, caseID); err != nil {
			return nil, err
		}
	}
	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{OwnerUserID: ownerID, CaseID: caseID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
