package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthhq/hearth-api/internal/models"
	"github.com/hearthhq/hearth-api/internal/repository"
	"github.com/hearthhq/hearth-api/internal/utils"
)

var (
	ErrFamilyNotFound     = errors.New("family not found")
	ErrNotFamilyMember    = errors.New("user is not a member of the family")
	ErrAlreadyMember      = errors.New("user is already a member of the family")
	ErrInvalidInviteCode  = errors.New("invalid invite code")
	ErrInvalidRole        = errors.New("invalid family role")
	ErrFamilyNameRequired = errors.New("family name is required")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInviteEmailMissing = errors.New("invitation email is required")
	ErrCannotRemoveSelf   = errors.New("the family creator cannot be removed")
)

// FamilyService handles family and membership business logic.
type FamilyService struct {
	familyRepo repository.FamilyRepository
	choreRepo  repository.ChoreRepository
}

// NewFamilyService creates a new FamilyService.
func NewFamilyService(familyRepo repository.FamilyRepository, choreRepo repository.ChoreRepository) *FamilyService {
	return &FamilyService{
		familyRepo: familyRepo,
		choreRepo:  choreRepo,
	}
}

// CreateFamilyInput represents input for creating a family.
type CreateFamilyInput struct {
	Name       string
	CalendarID string
	CreatorID  uint64
	Color      string
}

// Create creates a family and enrolls the creator as a parent.
func (s *FamilyService) Create(input CreateFamilyInput) (*models.Family, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrFamilyNameRequired
	}

	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	family := &models.Family{
		Name:       name,
		InviteCode: inviteCode,
		CalendarID: input.CalendarID,
		CreatorID:  input.CreatorID,
	}

	if err := s.familyRepo.Create(family); err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	member := &models.FamilyMember{
		FamilyID: family.ID,
		UserID:   input.CreatorID,
		Role:     models.RoleParent,
		Color:    input.Color,
		JoinedAt: time.Now(),
	}
	if err := s.familyRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add creator to family: %w", err)
	}

	return family, nil
}

// JoinInput represents input for joining a family by invite code.
type JoinInput struct {
	InviteCode string
	UserID     uint64
	Role       models.FamilyRole
	Color      string
}

// Join adds a user to the family matching the invite code.
func (s *FamilyService) Join(input JoinInput) (*models.Family, error) {
	if input.Role == "" {
		input.Role = models.RoleOther
	}
	if !validRole(input.Role) {
		return nil, ErrInvalidRole
	}

	family, err := s.familyRepo.FindByInviteCode(strings.TrimSpace(input.InviteCode))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}

	if _, err := s.familyRepo.FindMember(family.ID, input.UserID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	member := &models.FamilyMember{
		FamilyID: family.ID,
		UserID:   input.UserID,
		Role:     input.Role,
		Color:    input.Color,
		JoinedAt: time.Now(),
	}
	if err := s.familyRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to join family: %w", err)
	}

	return family, nil
}

// Get returns a family by ID.
func (s *FamilyService) Get(familyID uint64) (*models.Family, error) {
	family, err := s.familyRepo.FindByID(familyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFamilyNotFound
		}
		return nil, fmt.Errorf("failed to find family: %w", err)
	}
	return family, nil
}

// ListForUser returns all memberships of a user with families preloaded.
func (s *FamilyService) ListForUser(userID uint64) ([]models.FamilyMember, error) {
	memberships, err := s.familyRepo.ListMembershipsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list families: %w", err)
	}
	return memberships, nil
}

// ListMembers returns a family's roster with users preloaded.
func (s *FamilyService) ListMembers(familyID uint64) ([]models.FamilyMember, error) {
	members, err := s.familyRepo.ListMembers(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// UpdateFamilyInput represents editable family fields. Nil means leave
// unchanged.
type UpdateFamilyInput struct {
	Name       *string
	CalendarID *string
}

// Update applies edits to a family.
func (s *FamilyService) Update(familyID uint64, input UpdateFamilyInput) (*models.Family, error) {
	family, err := s.Get(familyID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrFamilyNameRequired
		}
		family.Name = name
	}
	if input.CalendarID != nil {
		family.CalendarID = *input.CalendarID
	}

	if err := s.familyRepo.Update(family); err != nil {
		return nil, fmt.Errorf("failed to update family: %w", err)
	}
	return family, nil
}

// Delete removes a family and all scoped data.
func (s *FamilyService) Delete(familyID uint64) error {
	if _, err := s.Get(familyID); err != nil {
		return err
	}
	if err := s.familyRepo.Delete(familyID); err != nil {
		return fmt.Errorf("failed to delete family: %w", err)
	}
	return nil
}

// RegenerateInviteCode rotates the family's invite code.
func (s *FamilyService) RegenerateInviteCode(familyID uint64) (*models.Family, error) {
	family, err := s.Get(familyID)
	if err != nil {
		return nil, err
	}

	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}
	family.InviteCode = inviteCode

	if err := s.familyRepo.Update(family); err != nil {
		return nil, fmt.Errorf("failed to update family: %w", err)
	}
	return family, nil
}

// RemoveMember drops a member from the family and scrubs them from
// every chore rotation roster so no chore keeps assigning to a person
// who left.
func (s *FamilyService) RemoveMember(familyID, userID uint64) error {
	family, err := s.Get(familyID)
	if err != nil {
		return err
	}
	if family.CreatorID == userID {
		return ErrCannotRemoveSelf
	}

	if _, err := s.familyRepo.FindMember(familyID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFamilyMember
		}
		return fmt.Errorf("failed to check membership: %w", err)
	}

	if err := s.choreRepo.RemoveRotationUser(familyID, userID); err != nil {
		return fmt.Errorf("failed to remove member from rotations: %w", err)
	}

	if err := s.familyRepo.RemoveMember(familyID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// Invite creates an email invitation with a fresh token.
func (s *FamilyService) Invite(familyID, invitedByID uint64, email string) (*models.FamilyInvitation, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrInviteEmailMissing
	}

	if _, err := s.Get(familyID); err != nil {
		return nil, err
	}

	invitation := &models.FamilyInvitation{
		FamilyID:    familyID,
		Email:       email,
		Token:       uuid.NewString(),
		InvitedByID: invitedByID,
	}
	if err := s.familyRepo.CreateInvitation(invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}
	return invitation, nil
}

// AcceptInvitation enrolls the user in the invited family and consumes
// the token.
func (s *FamilyService) AcceptInvitation(token string, userID uint64) (*models.Family, error) {
	invitation, err := s.familyRepo.FindInvitationByToken(strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to look up invitation: %w", err)
	}

	if _, err := s.familyRepo.FindMember(invitation.FamilyID, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	member := &models.FamilyMember{
		FamilyID: invitation.FamilyID,
		UserID:   userID,
		Role:     models.RoleOther,
		JoinedAt: time.Now(),
	}
	if err := s.familyRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to join family: %w", err)
	}

	if err := s.familyRepo.DeleteInvitation(invitation.ID); err != nil {
		return nil, fmt.Errorf("failed to consume invitation: %w", err)
	}

	return s.Get(invitation.FamilyID)
}

// RevokeInvitation deletes a pending invitation. The invitation must
// belong to the given family; an ID from another family reads as not
// found.
func (s *FamilyService) RevokeInvitation(familyID, invitationID uint64) error {
	invitation, err := s.familyRepo.FindInvitationByID(invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvitationNotFound
		}
		return fmt.Errorf("failed to look up invitation: %w", err)
	}
	if invitation.FamilyID != familyID {
		return ErrInvitationNotFound
	}

	if err := s.familyRepo.DeleteInvitation(invitation.ID); err != nil {
		return fmt.Errorf("failed to revoke invitation: %w", err)
	}
	return nil
}

func validRole(role models.FamilyRole) bool {
	switch role {
	case models.RoleParent, models.RoleChild, models.RoleOther:
		return true
	}
	return false
}
