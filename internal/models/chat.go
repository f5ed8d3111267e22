package models

import "time"

// Chat is one AI exchange attached to a case. Immutable once stored.
type Chat struct {
	ID          string    `gorm:"primaryKey;type:varchar(26)" json:"id"`
	OwnerUserID string    `gorm:"type:varchar(36);index;not null" json:"owner_user_id"`
	CaseID      string    `gorm:"type:varchar(26);index;not null" json:"case_id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Response    string    `gorm:"type:text" json:"response"`
	Timestamp   time.Time `json:"timestamp"`
}

func (c Chat) RecordID() string { return c.ID }

func (c Chat) Field(name string) (string, bool) {
	switch name {
	case FieldID:
		return c.ID, true
	case FieldOwnerUserID:
		return c.OwnerUserID, true
	case FieldCaseID:
		return c.CaseID, true
	}
	return "", false
}
