package models

import (
	"time"

	"gorm.io/gorm"
)

type TodoPriority string

const (
	PriorityLow    TodoPriority = "low"
	PriorityMedium TodoPriority = "medium"
	PriorityHigh   TodoPriority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p TodoPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type TodoStatus string

const (
	TodoStatusPending    TodoStatus = "pending"
	TodoStatusInProgress TodoStatus = "in_progress"
	TodoStatusCompleted  TodoStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s TodoStatus) Valid() bool {
	switch s {
	case TodoStatusPending, TodoStatusInProgress, TodoStatusCompleted:
		return true
	}
	return false
}

type Todo struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	FamilyID     uint64         `gorm:"not null;index" json:"family_id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	DueDate      *time.Time     `json:"due_date"`
	Priority     TodoPriority   `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Status       TodoStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	AssignedToID *uint64        `json:"assigned_to_id"`
	CreatorID    uint64         `gorm:"not null" json:"creator_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Family     Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	Creator    User   `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	AssignedTo *User  `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
}
