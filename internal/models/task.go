package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type Task struct {
	ID          string     `gorm:"primaryKey;type:varchar(26)" json:"id"`
	OwnerUserID string     `gorm:"type:varchar(36);index;not null" json:"owner_user_id"`
	CaseID      string     `gorm:"type:varchar(26);index;not null" json:"case_id"`
	Document    string     `gorm:"type:varchar(512);not null" json:"document"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (t Task) RecordID() string { return t.ID }

func (t Task) Field(name string) (string, bool) {
	switch name {
	case FieldID:
		return t.ID, true
	case FieldOwnerUserID:
		return t.OwnerUserID, true
	case FieldCaseID:
		return t.CaseID, true
	}
	return "", false
}
