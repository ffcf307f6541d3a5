package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hearthhq/hearth-api/internal/constants"
	"github.com/hearthhq/hearth-api/internal/models"
	"github.com/hearthhq/hearth-api/internal/repository"
	"github.com/hearthhq/hearth-api/internal/schedule"
)

var (
	ErrChoreNotFound          = errors.New("chore not found")
	ErrChoreTitleRequired     = errors.New("chore title is required")
	ErrInvalidFrequency       = errors.New("invalid chore frequency")
	ErrRotationTooSmall       = errors.New("rotation requires at least two members")
	ErrRotationMemberNotFound = errors.New("one or more rotation members do not belong to the family")
	ErrAssigneeNotFound       = errors.New("assignee does not belong to the family")
	ErrIndexOutOfRange        = errors.New("current assignee index is out of range")
)

// ChoreService handles chore business logic, including the completion
// transition that advances recurrence and rotation together.
type ChoreService struct {
	choreRepo  repository.ChoreRepository
	familyRepo repository.FamilyRepository
}

// NewChoreService creates a new ChoreService.
func NewChoreService(choreRepo repository.ChoreRepository, familyRepo repository.FamilyRepository) *ChoreService {
	return &ChoreService{
		choreRepo:  choreRepo,
		familyRepo: familyRepo,
	}
}

// CreateChoreInput represents input for creating a chore.
type CreateChoreInput struct {
	FamilyID             uint64
	Title                string
	Description          string
	Frequency            models.ChoreFrequency
	Rotation             bool
	RotationMemberIDs    []uint64
	CurrentAssigneeIndex *int
	AssignedToID         *uint64
	NextDue              *time.Time
	CreatorID            uint64
}

// Create validates and creates a chore. Under rotation the assignee is
// derived from the roster; it is never taken from the input.
func (s *ChoreService) Create(input CreateChoreInput) (*models.Chore, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrChoreTitleRequired
	}
	if !input.Frequency.Valid() {
		return nil, ErrInvalidFrequency
	}

	chore := &models.Chore{
		FamilyID:    input.FamilyID,
		Title:       title,
		Description: input.Description,
		Frequency:   input.Frequency,
		Rotation:    input.Rotation,
		NextDue:     input.NextDue,
		CreatorID:   input.CreatorID,
	}

	var roster []uint64
	if input.Rotation {
		if err := s.validateRoster(input.FamilyID, input.RotationMemberIDs); err != nil {
			return nil, err
		}
		roster = input.RotationMemberIDs

		if input.CurrentAssigneeIndex != nil {
			idx := *input.CurrentAssigneeIndex
			if idx < 0 || idx >= len(roster) {
				return nil, ErrIndexOutOfRange
			}
			chore.CurrentAssigneeIndex = &idx
			assignee := roster[idx]
			chore.AssignedToID = &assignee
		}
	} else {
		if input.AssignedToID != nil {
			if err := s.ensureFamilyMember(input.FamilyID, *input.AssignedToID); err != nil {
				return nil, err
			}
			chore.AssignedToID = input.AssignedToID
		}
	}

	if err := s.choreRepo.Create(chore, roster); err != nil {
		return nil, fmt.Errorf("failed to create chore: %w", err)
	}

	return s.Get(chore.ID)
}

// Get returns a chore with roster, assignee and creator loaded.
func (s *ChoreService) Get(choreID uint64) (*models.Chore, error) {
	chore, err := s.choreRepo.FindByID(choreID, "AssignedTo", "Creator", "RotationMembers.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChoreNotFound
		}
		return nil, fmt.Errorf("failed to find chore: %w", err)
	}
	return chore, nil
}

// UpdateChoreInput represents editable chore fields. Nil means leave
// unchanged; Rotation and the roster are always re-validated together.
type UpdateChoreInput struct {
	Title                *string
	Description          *string
	Frequency            *models.ChoreFrequency
	Rotation             *bool
	RotationMemberIDs    []uint64
	CurrentAssigneeIndex *int
	AssignedToID         *uint64
	NextDue              *time.Time
	ClearNextDue         bool
}

// Update applies edits to a chore while preserving the rotation
// invariant: assignee derived from roster[index] when rotation is on,
// no roster rows when it is off.
func (s *ChoreService) Update(choreID uint64, input UpdateChoreInput) (*models.Chore, error) {
	chore, err := s.choreRepo.FindByID(choreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChoreNotFound
		}
		return nil, fmt.Errorf("failed to find chore: %w", err)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrChoreTitleRequired
		}
		chore.Title = title
	}
	if input.Description != nil {
		chore.Description = *input.Description
	}
	if input.Frequency != nil {
		if !input.Frequency.Valid() {
			return nil, ErrInvalidFrequency
		}
		chore.Frequency = *input.Frequency
	}
	if input.ClearNextDue {
		chore.NextDue = nil
	} else if input.NextDue != nil {
		chore.NextDue = input.NextDue
	}

	rotation := chore.Rotation
	if input.Rotation != nil {
		rotation = *input.Rotation
	}

	var roster []uint64
	if rotation {
		roster = input.RotationMemberIDs
		if roster == nil {
			roster = chore.RotationUserIDs()
		}
		if err := s.validateRoster(chore.FamilyID, roster); err != nil {
			return nil, err
		}

		index := chore.CurrentAssigneeIndex
		if input.CurrentAssigneeIndex != nil {
			index = input.CurrentAssigneeIndex
		}
		if index != nil {
			if *index < 0 || *index >= len(roster) {
				return nil, ErrIndexOutOfRange
			}
			assignee := roster[*index]
			chore.CurrentAssigneeIndex = index
			chore.AssignedToID = &assignee
		} else {
			chore.CurrentAssigneeIndex = nil
			chore.AssignedToID = nil
		}
	} else {
		chore.CurrentAssigneeIndex = nil
		if input.AssignedToID != nil {
			if err := s.ensureFamilyMember(chore.FamilyID, *input.AssignedToID); err != nil {
				return nil, err
			}
			chore.AssignedToID = input.AssignedToID
		} else if chore.Rotation {
			// Turning rotation off without naming an assignee clears it.
			chore.AssignedToID = nil
		}
	}
	chore.Rotation = rotation

	if err := s.choreRepo.Update(chore, roster); err != nil {
		return nil, fmt.Errorf("failed to update chore: %w", err)
	}

	return s.Get(chore.ID)
}

// Delete removes a chore.
func (s *ChoreService) Delete(choreID uint64) error {
	if _, err := s.choreRepo.FindByID(choreID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChoreNotFound
		}
		return fmt.Errorf("failed to find chore: %w", err)
	}
	if err := s.choreRepo.Delete(choreID); err != nil {
		return fmt.Errorf("failed to delete chore: %w", err)
	}
	return nil
}

// Complete applies the completion transition: the completion time
// becomes last_completed, the next due date is derived from the
// frequency, and under rotation the assignment advances one position
// so the chore always names the person responsible for the NEXT
// occurrence. All four fields are persisted in one row update.
//
// There is no version check; two members completing the same chore at
// the same moment resolve last-writer-wins, which can double-advance a
// rotation. This matches the product's semantics.
func (s *ChoreService) Complete(choreID uint64) (*models.Chore, error) {
	chore, err := s.choreRepo.FindByID(choreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChoreNotFound
		}
		return nil, fmt.Errorf("failed to find chore: %w", err)
	}

	now := time.Now()
	completion := repository.ChoreCompletion{
		LastCompleted:        now,
		NextDue:              schedule.NextDue(chore.Frequency, now),
		AssignedToID:         chore.AssignedToID,
		CurrentAssigneeIndex: chore.CurrentAssigneeIndex,
	}

	if roster := chore.RotationUserIDs(); chore.Rotation && len(roster) > 0 {
		nextIndex, nextAssignee := schedule.Advance(roster, chore.CurrentAssigneeIndex)
		completion.CurrentAssigneeIndex = &nextIndex
		completion.AssignedToID = &nextAssignee
	}

	if err := s.choreRepo.ApplyCompletion(chore.ID, completion); err != nil {
		return nil, fmt.Errorf("failed to complete chore: %w", err)
	}

	return s.Get(chore.ID)
}

// ChoreWithState pairs a chore with its read-time due classification.
type ChoreWithState struct {
	models.Chore
	DueState schedule.DueState `json:"due_state"`
}

// ListGrouped returns a family's chores classified against now and
// sorted by group order (overdue first, recently completed last), then
// by due date within a group.
func (s *ChoreService) ListGrouped(familyID uint64, now time.Time) ([]ChoreWithState, error) {
	chores, err := s.choreRepo.ListByFamily(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chores: %w", err)
	}

	result := make([]ChoreWithState, len(chores))
	for i, chore := range chores {
		result[i] = ChoreWithState{
			Chore:    chore,
			DueState: schedule.Classify(chore.NextDue, chore.LastCompleted, now),
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].DueState != result[j].DueState {
			return result[i].DueState.Order() < result[j].DueState.Order()
		}
		a, b := result[i].NextDue, result[j].NextDue
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	return result, nil
}

func (s *ChoreService) validateRoster(familyID uint64, roster []uint64) error {
	if len(roster) < constants.MinRotationMembers {
		return ErrRotationTooSmall
	}

	members, err := s.familyRepo.ListMembers(familyID)
	if err != nil {
		return fmt.Errorf("failed to list family members: %w", err)
	}

	inFamily := make(map[uint64]struct{}, len(members))
	for _, m := range members {
		inFamily[m.UserID] = struct{}{}
	}

	seen := make(map[uint64]struct{}, len(roster))
	for _, uid := range roster {
		if _, ok := inFamily[uid]; !ok {
			return ErrRotationMemberNotFound
		}
		if _, dup := seen[uid]; dup {
			return ErrRotationMemberNotFound
		}
		seen[uid] = struct{}{}
	}
	return nil
}

func (s *ChoreService) ensureFamilyMember(familyID, userID uint64) error {
	if _, err := s.familyRepo.FindMember(familyID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to verify family membership: %w", err)
	}
	return nil
}
