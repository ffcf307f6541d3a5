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

// ChoreHandler coordinates chore HTTP handlers.
type ChoreHandler struct {
	choreService *services.ChoreService
}

// NewChoreHandler creates a new ChoreHandler.
func NewChoreHandler(choreService *services.ChoreService) *ChoreHandler {
	return &ChoreHandler{
		choreService: choreService,
	}
}

// ListChores returns a family's chores classified into due groups.
func (h *ChoreHandler) ListChores(c *gin.Context) {
	family, ok := middleware.GetFamily(c)
	if !ok {
		apierrors.InternalError(c, "Family not found in context")
		return
	}

	chores, err := h.choreService.ListGrouped(family.ID, time.Now())
	if err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChoreListResponse(chores))
}

// CreateChore creates a new chore in the family.
func (h *ChoreHandler) CreateChore(c *gin.Context) {
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

	type CreateChoreRequest struct {
		Title                string                `json:"title" binding:"required"`
		Description          string                `json:"description"`
		Frequency            models.ChoreFrequency `json:"frequency" binding:"required"`
		Rotation             bool                  `json:"rotation"`
		RotationMemberIDs    []uint64              `json:"rotation_member_ids"`
		CurrentAssigneeIndex *int                  `json:"current_assignee_index"`
		AssignedToID         *uint64               `json:"assigned_to_id"`
		NextDue              *time.Time            `json:"next_due"`
	}

	var req CreateChoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	chore, err := h.choreService.Create(services.CreateChoreInput{
		FamilyID:             family.ID,
		Title:                req.Title,
		Description:          req.Description,
		Frequency:            req.Frequency,
		Rotation:             req.Rotation,
		RotationMemberIDs:    req.RotationMemberIDs,
		CurrentAssigneeIndex: req.CurrentAssigneeIndex,
		AssignedToID:         req.AssignedToID,
		NextDue:              req.NextDue,
		CreatorID:            userID,
	})
	if err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChoreDTO(*chore))
}

// GetChore returns a chore.
// Chore is already loaded by RequireChoreAccess middleware.
func (h *ChoreHandler) GetChore(c *gin.Context) {
	chore, ok := middleware.GetChore(c)
	if !ok {
		apierrors.InternalError(c, "Chore not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToChoreDTO(chore))
}

// UpdateChore applies edits to a chore.
func (h *ChoreHandler) UpdateChore(c *gin.Context) {
	chore, ok := middleware.GetChore(c)
	if !ok {
		apierrors.InternalError(c, "Chore not found in context")
		return
	}

	type UpdateChoreRequest struct {
		Title                *string                `json:"title"`
		Description          *string                `json:"description"`
		Frequency            *models.ChoreFrequency `json:"frequency"`
		Rotation             *bool                  `json:"rotation"`
		RotationMemberIDs    []uint64               `json:"rotation_member_ids"`
		CurrentAssigneeIndex *int                   `json:"current_assignee_index"`
		AssignedToID         *uint64                `json:"assigned_to_id"`
		NextDue              *time.Time             `json:"next_due"`
		ClearNextDue         bool                   `json:"clear_next_due"`
	}

	var req UpdateChoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.choreService.Update(chore.ID, services.UpdateChoreInput{
		Title:                req.Title,
		Description:          req.Description,
		Frequency:            req.Frequency,
		Rotation:             req.Rotation,
		RotationMemberIDs:    req.RotationMemberIDs,
		CurrentAssigneeIndex: req.CurrentAssigneeIndex,
		AssignedToID:         req.AssignedToID,
		NextDue:              req.NextDue,
		ClearNextDue:         req.ClearNextDue,
	})
	if err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChoreDTO(*updated))
}

// DeleteChore deletes a chore.
func (h *ChoreHandler) DeleteChore(c *gin.Context) {
	chore, ok := middleware.GetChore(c)
	if !ok {
		apierrors.InternalError(c, "Chore not found in context")
		return
	}

	if err := h.choreService.Delete(chore.ID); err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Chore deleted successfully",
	})
}

// CompleteChore records a completion, advancing recurrence and rotation.
func (h *ChoreHandler) CompleteChore(c *gin.Context) {
	chore, ok := middleware.GetChore(c)
	if !ok {
		apierrors.InternalError(c, "Chore not found in context")
		return
	}

	updated, err := h.choreService.Complete(chore.ID)
	if err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChoreDTO(*updated))
}

func respondChoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrChoreTitleRequired),
		errors.Is(err, services.ErrInvalidFrequency),
		errors.Is(err, services.ErrRotationTooSmall),
		errors.Is(err, services.ErrRotationMemberNotFound),
		errors.Is(err, services.ErrAssigneeNotFound),
		errors.Is(err, services.ErrIndexOutOfRange):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrChoreNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
