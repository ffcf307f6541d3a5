package models

import (
	"time"

	"gorm.io/gorm"
)

type ChoreFrequency string

const (
	FrequencyDaily   ChoreFrequency = "daily"
	FrequencyWeekly  ChoreFrequency = "weekly"
	FrequencyMonthly ChoreFrequency = "monthly"
)

// Valid reports whether f is one of the known frequencies.
func (f ChoreFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Chore is a recurring household task. When Rotation is enabled the
// assignee is always derived from RotationMembers[CurrentAssigneeIndex];
// the two are never written independently. When Rotation is disabled
// there are no rotation rows and CurrentAssigneeIndex is null.
type Chore struct {
	ID                   uint64         `gorm:"primarykey" json:"id"`
	FamilyID             uint64         `gorm:"not null;index" json:"family_id"`
	Title                string         `gorm:"not null" json:"title"`
	Description          string         `gorm:"type:text" json:"description"`
	Frequency            ChoreFrequency `gorm:"type:varchar(20);not null" json:"frequency"`
	Rotation             bool           `gorm:"not null;default:false" json:"rotation"`
	CurrentAssigneeIndex *int           `json:"current_assignee_index"`
	AssignedToID         *uint64        `json:"assigned_to_id"`
	NextDue              *time.Time     `json:"next_due"`
	LastCompleted        *time.Time     `json:"last_completed"`
	CreatorID            uint64         `gorm:"not null" json:"creator_id"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Family          Family                `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	Creator         User                  `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	AssignedTo      *User                 `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	RotationMembers []ChoreRotationMember `gorm:"foreignKey:ChoreID" json:"rotation_members,omitempty"`
}

// RotationUserIDs returns the rotation roster in position order.
// RotationMembers must have been preloaded ordered by position.
func (c *Chore) RotationUserIDs() []uint64 {
	ids := make([]uint64, len(c.RotationMembers))
	for i, m := range c.RotationMembers {
		ids[i] = m.UserID
	}
	return ids
}
