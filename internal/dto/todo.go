package dto

import (
	"time"

	"github.com/hearthhq/hearth-api/internal/models"
	"github.com/hearthhq/hearth-api/internal/services"
)

// TodoDTO represents a to-do in API responses
type TodoDTO struct {
	ID           uint64              `json:"id"`
	FamilyID     uint64              `json:"family_id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	DueDate      *time.Time          `json:"due_date"`
	Priority     models.TodoPriority `json:"priority"`
	Status       models.TodoStatus   `json:"status"`
	AssignedToID *uint64             `json:"assigned_to_id"`
	CreatorID    uint64              `json:"creator_id"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Bucket       string              `json:"bucket,omitempty"`
	AssignedTo   *UserDTO            `json:"assigned_to,omitempty"`
	Creator      *UserDTO            `json:"creator,omitempty"`
}

// ToTodoDTO converts a Todo model to TodoDTO
func ToTodoDTO(todo models.Todo) TodoDTO {
	dto := TodoDTO{
		ID:           todo.ID,
		FamilyID:     todo.FamilyID,
		Title:        todo.Title,
		Description:  todo.Description,
		DueDate:      todo.DueDate,
		Priority:     todo.Priority,
		Status:       todo.Status,
		AssignedToID: todo.AssignedToID,
		CreatorID:    todo.CreatorID,
		CreatedAt:    todo.CreatedAt,
		UpdatedAt:    todo.UpdatedAt,
	}

	// Include assignee if preloaded
	if todo.AssignedTo != nil && todo.AssignedTo.ID != 0 {
		assignedTo := ToUserDTO(*todo.AssignedTo)
		dto.AssignedTo = &assignedTo
	}

	// Include creator if preloaded
	if todo.Creator.ID != 0 {
		creator := ToUserDTO(todo.Creator)
		dto.Creator = &creator
	}

	return dto
}

// ToTodoWithBucketDTO converts a bucketed to-do to TodoDTO
func ToTodoWithBucketDTO(todo services.TodoWithBucket) TodoDTO {
	dto := ToTodoDTO(todo.Todo)
	dto.Bucket = todo.Bucket
	return dto
}

// TodoListResponse represents a bucketed list of to-dos
type TodoListResponse struct {
	Todos []TodoDTO `json:"todos"`
}

// ToTodoListResponse converts bucketed to-dos to TodoListResponse
func ToTodoListResponse(todos []services.TodoWithBucket) TodoListResponse {
	items := make([]TodoDTO, len(todos))
	for i, todo := range todos {
		items[i] = ToTodoWithBucketDTO(todo)
	}
	return TodoListResponse{Todos: items}
}
