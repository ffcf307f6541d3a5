package repository

import (
	"time"

	"github.com/hearthhq/hearth-api/internal/models"
	"github.com/hearthhq/hearth-api/internal/utils"
)

// ChoreCompletion is the derived state written by a chore completion.
// All four fields are persisted in a single row update so the assignee
// can never drift from the rotation index.
type ChoreCompletion struct {
	LastCompleted        time.Time
	NextDue              time.Time
	AssignedToID         *uint64
	CurrentAssigneeIndex *int
}

// ChoreRepository defines the interface for chore data access
type ChoreRepository interface {
	// Create creates a new chore together with its rotation roster
	Create(chore *models.Chore, rotationUserIDs []uint64) error

	// FindByID finds a chore by ID with its rotation roster in position order
	FindByID(id uint64, preload ...string) (*models.Chore, error)

	// ListByFamily retrieves all chores of a family with rosters preloaded
	ListByFamily(familyID uint64) ([]models.Chore, error)

	// Update updates a chore's editable fields and replaces its roster
	Update(chore *models.Chore, rotationUserIDs []uint64) error

	// Delete soft deletes a chore and drops its rotation roster
	Delete(id uint64) error

	// ApplyCompletion persists a completion transition as one single-row update
	ApplyCompletion(choreID uint64, completion ChoreCompletion) error

	// RemoveRotationUser drops a user from every rotation roster in a family,
	// compacting positions and resetting out-of-range indexes
	RemoveRotationUser(familyID, userID uint64) error
}

// TodoRepository defines the interface for to-do data access
type TodoRepository interface {
	Create(todo *models.Todo) error
	FindByID(id uint64, preload ...string) (*models.Todo, error)
	ListByFamily(familyID uint64, status *models.TodoStatus) ([]models.Todo, error)
	Update(todo *models.Todo) error
	Delete(id uint64) error
}

// FamilyRepository defines the interface for family data access
type FamilyRepository interface {
	Create(family *models.Family) error
	FindByID(id uint64) (*models.Family, error)
	FindByInviteCode(code string) (*models.Family, error)
	Update(family *models.Family) error

	// Delete deletes a family and all scoped data
	Delete(id uint64) error

	AddMember(member *models.FamilyMember) error
	RemoveMember(familyID, userID uint64) error
	FindMember(familyID, userID uint64) (*models.FamilyMember, error)

	// ListMembershipsByUserID lists all families a user belongs to
	ListMembershipsByUserID(userID uint64) ([]models.FamilyMember, error)

	// ListMembers lists all members of a family with users preloaded
	ListMembers(familyID uint64) ([]models.FamilyMember, error)

	CreateInvitation(invitation *models.FamilyInvitation) error
	FindInvitationByID(id uint64) (*models.FamilyInvitation, error)
	FindInvitationByToken(token string) (*models.FamilyInvitation, error)
	DeleteInvitation(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error

	// CreateWithPersonalFamily creates a user, their personal family, and
	// the corresponding membership within a single transaction.
	CreateWithPersonalFamily(user *models.User, family *models.Family, member *models.FamilyMember) error

	FindByID(id uint64) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
}

// ChatRepository defines the interface for chat history access
type ChatRepository interface {
	// CreateTurn persists one (message, response) pair
	CreateTurn(message *models.ChatMessage) error

	// ListByFamily returns the most recent turns, oldest first
	ListByFamily(familyID uint64, limit int) ([]models.ChatMessage, error)

	// ListPageByFamily returns one page of turns, newest first, with the
	// total turn count for the family
	ListPageByFamily(familyID uint64, params utils.PaginationParams) ([]models.ChatMessage, int64, error)
}
