package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hearthhq/hearth-api/internal/dto"
	apierrors "github.com/hearthhq/hearth-api/internal/errors"
	"github.com/hearthhq/hearth-api/internal/middleware"
	"github.com/hearthhq/hearth-api/internal/models"
	"github.com/hearthhq/hearth-api/internal/services"
)

// TodoHandler coordinates to-do HTTP handlers.
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// ListTodos returns a family's to-dos grouped into due buckets.
// Can filter by status.
func (h *TodoHandler) ListTodos(c *gin.Context) {
	family, ok := middleware.GetFamily(c)
	if !ok {
		apierrors.InternalError(c, "Family not found in context")
		return
	}

	var status *models.TodoStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := models.TodoStatus(statusStr)
		if !s.Valid() {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		status = &s
	}

	todos, err := h.todoService.ListGrouped(family.ID, status, time.Now())
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoListResponse(todos))
}

// CreateTodo creates a new to-do in the family.
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	family, ok := middleware.GetFamily(c)
	if !ok {
		apierrors.InternalError(c, "Family not found in context")
		return
	}

	type CreateTodoRequest struct {
		Title        string              `json:"title" binding:"required"`
		Description  string              `json:"description"`
		DueDate      *time.Time          `json:"due_date"`
		Priority     models.TodoPriority `json:"priority"`
		AssignedToID *uint64             `json:"assigned_to_id"`
	}

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.todoService.Create(services.CreateTodoInput{
		FamilyID:     family.ID,
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		Priority:     req.Priority,
		AssignedToID: req.AssignedToID,
		CreatorID:    userID,
	})
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTodoDTO(*todo))
}

// GetTodo returns a to-do.
// Todo is already loaded by RequireTodoAccess middleware.
func (h *TodoHandler) GetTodo(c *gin.Context) {
	todo, ok := middleware.GetTodo(c)
	if !ok {
		apierrors.InternalError(c, "Todo not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(todo))
}

// UpdateTodo applies edits to a to-do.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	todo, ok := middleware.GetTodo(c)
	if !ok {
		apierrors.InternalError(c, "Todo not found in context")
		return
	}

	type UpdateTodoRequest struct {
		Title         *string              `json:"title"`
		Description   *string              `json:"description"`
		DueDate       *time.Time           `json:"due_date"`
		ClearDueDate  bool                 `json:"clear_due_date"`
		Priority      *models.TodoPriority `json:"priority"`
		Status        *models.TodoStatus   `json:"status"`
		AssignedToID  *uint64              `json:"assigned_to_id"`
		ClearAssignee bool                 `json:"clear_assignee"`
	}

	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.todoService.Update(todo.ID, services.UpdateTodoInput{
		Title:         req.Title,
		Description:   req.Description,
		DueDate:       req.DueDate,
		ClearDueDate:  req.ClearDueDate,
		Priority:      req.Priority,
		Status:        req.Status,
		AssignedToID:  req.AssignedToID,
		ClearAssignee: req.ClearAssignee,
	})
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*updated))
}

// DeleteTodo deletes a to-do.
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	todo, ok := middleware.GetTodo(c)
	if !ok {
		apierrors.InternalError(c, "Todo not found in context")
		return
	}

	if err := h.todoService.Delete(todo.ID); err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo deleted successfully",
	})
}

// ToggleTodo flips a to-do between pending and completed.
func (h *TodoHandler) ToggleTodo(c *gin.Context) {
	todo, ok := middleware.GetTodo(c)
	if !ok {
		apierrors.InternalError(c, "Todo not found in context")
		return
	}

	updated, err := h.todoService.Toggle(todo.ID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*updated))
}

func respondTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTodoTitleRequired),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTodoNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
