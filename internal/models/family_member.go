package models

import "time"

type FamilyRole string

const (
	RoleParent FamilyRole = "parent"
	RoleChild  FamilyRole = "child"
	RoleOther  FamilyRole = "other"
)

type FamilyMember struct {
	FamilyID uint64     `gorm:"primarykey" json:"family_id"`
	UserID   uint64     `gorm:"primarykey" json:"user_id"`
	Role     FamilyRole `gorm:"type:varchar(20);not null" json:"role"`
	// Color is the member's display color tag, resolved to RGB by the
	// palette package.
	Color    string    `gorm:"type:varchar(20)" json:"color"`
	JoinedAt time.Time `json:"joined_at"`

	// Relations
	Family Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
