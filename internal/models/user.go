package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	DisplayName  string         `gorm:"type:varchar(100)" json:"display_name"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Memberships  []FamilyMember `gorm:"foreignKey:UserID" json:"-"`
	CreatedTodos []Todo         `gorm:"foreignKey:CreatorID" json:"-"`
}
