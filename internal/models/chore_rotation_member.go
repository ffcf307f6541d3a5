package models

// ChoreRotationMember is one slot in a chore's rotation roster.
// Position is the 0-based rotation order.
type ChoreRotationMember struct {
	ChoreID  uint64 `gorm:"primarykey" json:"chore_id"`
	Position int    `gorm:"primarykey" json:"position"`
	UserID   uint64 `gorm:"not null" json:"user_id"`

	// Relations
	Chore Chore `gorm:"foreignKey:ChoreID" json:"chore,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
