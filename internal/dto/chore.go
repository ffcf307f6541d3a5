package dto

import (
	"time"

	"github.com/hearthhq/hearth-api/internal/models"
	"github.com/hearthhq/hearth-api/internal/services"
)

// ChoreDTO represents a chore in API responses
type ChoreDTO struct {
	ID                   uint64                `json:"id"`
	FamilyID             uint64                `json:"family_id"`
	Title                string                `json:"title"`
	Description          string                `json:"description"`
	Frequency            models.ChoreFrequency `json:"frequency"`
	Rotation             bool                  `json:"rotation"`
	CurrentAssigneeIndex *int                  `json:"current_assignee_index"`
	AssignedToID         *uint64               `json:"assigned_to_id"`
	NextDue              *time.Time            `json:"next_due"`
	LastCompleted        *time.Time            `json:"last_completed"`
	CreatorID            uint64                `json:"creator_id"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
	DueState             string                `json:"due_state,omitempty"`
	AssignedTo           *UserDTO              `json:"assigned_to,omitempty"`
	Creator              *UserDTO              `json:"creator,omitempty"`
	RotationMembers      []UserDTO             `json:"rotation_members,omitempty"`
}

// ToChoreDTO converts a Chore model to ChoreDTO
func ToChoreDTO(chore models.Chore) ChoreDTO {
	dto := ChoreDTO{
		ID:                   chore.ID,
		FamilyID:             chore.FamilyID,
		Title:                chore.Title,
		Description:          chore.Description,
		Frequency:            chore.Frequency,
		Rotation:             chore.Rotation,
		CurrentAssigneeIndex: chore.CurrentAssigneeIndex,
		AssignedToID:         chore.AssignedToID,
		NextDue:              chore.NextDue,
		LastCompleted:        chore.LastCompleted,
		CreatorID:            chore.CreatorID,
		CreatedAt:            chore.CreatedAt,
		UpdatedAt:            chore.UpdatedAt,
	}

	// Include assignee if preloaded
	if chore.AssignedTo != nil && chore.AssignedTo.ID != 0 {
		assignedTo := ToUserDTO(*chore.AssignedTo)
		dto.AssignedTo = &assignedTo
	}

	// Include creator if preloaded
	if chore.Creator.ID != 0 {
		creator := ToUserDTO(chore.Creator)
		dto.Creator = &creator
	}

	// Include rotation roster in position order if preloaded
	if len(chore.RotationMembers) > 0 {
		dto.RotationMembers = make([]UserDTO, len(chore.RotationMembers))
		for i, member := range chore.RotationMembers {
			dto.RotationMembers[i] = ToUserDTO(member.User)
		}
	}

	return dto
}

// ToChoreWithStateDTO converts a classified chore to ChoreDTO
func ToChoreWithStateDTO(chore services.ChoreWithState) ChoreDTO {
	dto := ToChoreDTO(chore.Chore)
	dto.DueState = string(chore.DueState)
	return dto
}

// ChoreListResponse represents a classified list of chores
type ChoreListResponse struct {
	Chores []ChoreDTO `json:"chores"`
}

// ToChoreListResponse converts classified chores to ChoreListResponse
func ToChoreListResponse(chores []services.ChoreWithState) ChoreListResponse {
	items := make([]ChoreDTO, len(chores))
	for i, chore := range chores {
		items[i] = ToChoreWithStateDTO(chore)
	}
	return ChoreListResponse{Chores: items}
}
