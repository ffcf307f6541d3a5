package models

import (
	"time"

	"gorm.io/gorm"
)

type Family struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	InviteCode string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"invite_code"`
	// CalendarID links the family to a calendar on the external calendar
	// service. Empty means no calendar is connected.
	CalendarID string         `gorm:"type:varchar(255)" json:"calendar_id"`
	CreatorID  uint64         `gorm:"not null" json:"creator_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members []FamilyMember `gorm:"foreignKey:FamilyID" json:"members,omitempty"`
	Chores  []Chore        `gorm:"foreignKey:FamilyID" json:"chores,omitempty"`
	Todos   []Todo         `gorm:"foreignKey:FamilyID" json:"todos,omitempty"`
}
