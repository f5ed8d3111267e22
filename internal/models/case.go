package models

import "time"

// Case is owned exclusively by the user who created it.
// Documents holds object storage keys in upload order.
type Case struct {
	ID          string    `gorm:"primaryKey;type:varchar(26)" json:"id"`
	OwnerUserID string    `gorm:"type:varchar(36);index;not null" json:"owner_user_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	CreatedAt   time.Time `json:"created_at"`
	Documents   []string  `gorm:"serializer:json;type:text" json:"documents"`
	ChatIDs     []string  `gorm:"serializer:json;type:text" json:"chat_ids"`
}

func (c Case) RecordID() string { return c.ID }

func (c Case) Field(name string) (string, bool) {
	switch name {
	case FieldID:
		return c.ID, true
	case FieldOwnerUserID:
		return c.OwnerUserID, true
	}
	return "", false
}
