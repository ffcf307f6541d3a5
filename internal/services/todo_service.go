package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hearthhq/hearth-api/internal/models"
	"github.com/hearthhq/hearth-api/internal/repository"
	"github.com/hearthhq/hearth-api/internal/schedule"
)

var (
	ErrTodoNotFound      = errors.New("todo not found")
	ErrTodoTitleRequired = errors.New("todo title is required")
	ErrInvalidPriority   = errors.New("invalid todo priority")
	ErrInvalidStatus     = errors.New("invalid todo status")
)

// TodoService handles to-do business logic. To-dos have no recurrence;
// status transitions are entirely caller-driven.
type TodoService struct {
	todoRepo   repository.TodoRepository
	familyRepo repository.FamilyRepository
}

// NewTodoService creates a new TodoService.
func NewTodoService(todoRepo repository.TodoRepository, familyRepo repository.FamilyRepository) *TodoService {
	return &TodoService{
		todoRepo:   todoRepo,
		familyRepo: familyRepo,
	}
}

// CreateTodoInput represents input for creating a to-do.
type CreateTodoInput struct {
	FamilyID     uint64
	Title        string
	Description  string
	DueDate      *time.Time
	Priority     models.TodoPriority
	AssignedToID *uint64
	CreatorID    uint64
}

// Create validates and creates a to-do.
func (s *TodoService) Create(input CreateTodoInput) (*models.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTodoTitleRequired
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if input.AssignedToID != nil {
		if err := s.ensureFamilyMember(input.FamilyID, *input.AssignedToID); err != nil {
			return nil, err
		}
	}

	todo := &models.Todo{
		FamilyID:     input.FamilyID,
		Title:        title,
		Description:  input.Description,
		DueDate:      input.DueDate,
		Priority:     input.Priority,
		Status:       models.TodoStatusPending,
		AssignedToID: input.AssignedToID,
		CreatorID:    input.CreatorID,
	}

	if err := s.todoRepo.Create(todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return s.Get(todo.ID)
}

// Get returns a to-do with creator and assignee loaded.
func (s *TodoService) Get(todoID uint64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(todoID, "Creator", "AssignedTo")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	return todo, nil
}

// UpdateTodoInput represents editable to-do fields. Nil means leave
// unchanged.
type UpdateTodoInput struct {
	Title         *string
	Description   *string
	DueDate       *time.Time
	ClearDueDate  bool
	Priority      *models.TodoPriority
	Status        *models.TodoStatus
	AssignedToID  *uint64
	ClearAssignee bool
}

// Update applies edits to a to-do.
func (s *TodoService) Update(todoID uint64, input UpdateTodoInput) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(todoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTodoTitleRequired
		}
		todo.Title = title
	}
	if input.Description != nil {
		todo.Description = *input.Description
	}
	if input.ClearDueDate {
		todo.DueDate = nil
	} else if input.DueDate != nil {
		todo.DueDate = input.DueDate
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		todo.Priority = *input.Priority
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		todo.Status = *input.Status
	}
	if input.ClearAssignee {
		todo.AssignedToID = nil
	} else if input.AssignedToID != nil {
		if err := s.ensureFamilyMember(todo.FamilyID, *input.AssignedToID); err != nil {
			return nil, err
		}
		todo.AssignedToID = input.AssignedToID
	}

	if err := s.todoRepo.Update(todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return s.Get(todo.ID)
}

// Delete removes a to-do.
func (s *TodoService) Delete(todoID uint64) error {
	if _, err := s.todoRepo.FindByID(todoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("failed to find todo: %w", err)
	}
	if err := s.todoRepo.Delete(todoID); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

// Toggle flips a to-do between pending and completed.
func (s *TodoService) Toggle(todoID uint64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(todoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	if todo.Status == models.TodoStatusCompleted {
		todo.Status = models.TodoStatusPending
	} else {
		todo.Status = models.TodoStatusCompleted
	}

	if err := s.todoRepo.Update(todo); err != nil {
		return nil, fmt.Errorf("failed to toggle todo: %w", err)
	}

	return s.Get(todo.ID)
}

// TodoWithBucket pairs a to-do with its read-time grouping bucket.
type TodoWithBucket struct {
	models.Todo
	Bucket string `json:"bucket"`

	bucket schedule.TodoBucket
}

// ListGrouped returns a family's to-dos bucketed against now and
// sorted by bucket order, then due date. Completed to-dos sort after
// open ones within their bucket.
func (s *TodoService) ListGrouped(familyID uint64, status *models.TodoStatus, now time.Time) ([]TodoWithBucket, error) {
	todos, err := s.todoRepo.ListByFamily(familyID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	result := make([]TodoWithBucket, len(todos))
	for i, todo := range todos {
		bucket := schedule.ClassifyTodo(todo.DueDate, now)
		result[i] = TodoWithBucket{
			Todo:   todo,
			Bucket: bucket.String(),
			bucket: bucket,
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].bucket != result[j].bucket {
			return result[i].bucket < result[j].bucket
		}
		ci := result[i].Status == models.TodoStatusCompleted
		cj := result[j].Status == models.TodoStatusCompleted
		if ci != cj {
			return !ci
		}
		a, b := result[i].DueDate, result[j].DueDate
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

func (s *TodoService) ensureFamilyMember(familyID, userID uint64) error {
	if _, err := s.familyRepo.FindMember(familyID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to verify family membership: %w", err)
	}
	return nil
}
