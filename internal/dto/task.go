package dto

import (
	"time"

	"github.com/yukikurage/legal-case-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          string            `json:"id"`
	CaseID      string            `json:"case_id"`
	Document    string            `json:"document"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		CaseID:      task.CaseID,
		Document:    task.Document,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
	}
}

// ToTaskDTOs converts tasks, returning an empty slice rather than nil
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, ToTaskDTO(task))
	}
	return out
}
