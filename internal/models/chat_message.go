package models

import (
	"time"

	"gorm.io/gorm"
)

// ChatMessage is one assistant turn: the user's message and the
// assistant's response, persisted together.
type ChatMessage struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	FamilyID  uint64         `gorm:"not null;index" json:"family_id"`
	UserID    uint64         `gorm:"not null" json:"user_id"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Response  string         `gorm:"type:text" json:"response"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Family Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
