package models

import "time"

// User is a registered account. Email is matched case-sensitively.
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u User) RecordID() string { return u.ID }

func (u User) Field(name string) (string, bool) {
	switch name {
	case FieldID:
		return u.ID, true
	case FieldEmail:
		return u.Email, true
	}
	return "", false
}
