package models

import (
	"time"

	"gorm.io/gorm"
)

type FamilyInvitation struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	FamilyID    uint64         `gorm:"not null;index" json:"family_id"`
	Email       string         `gorm:"type:varchar(255);not null" json:"email"`
	Token       string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`
	InvitedByID uint64         `gorm:"not null" json:"invited_by_id"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Family    Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	InvitedBy User   `gorm:"foreignKey:InvitedByID" json:"invited_by,omitempty"`
}
