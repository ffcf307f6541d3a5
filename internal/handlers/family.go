package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hearthhq/hearth-api/internal/dto"
	apierrors "github.com/hearthhq/hearth-api/internal/errors"
	"github.com/hearthhq/hearth-api/internal/middleware"
	"github.com/hearthhq/hearth-api/internal/models"
	"github.com/hearthhq/hearth-api/internal/services"
)

// FamilyHandler coordinates family and membership HTTP handlers.
type FamilyHandler struct {
	familyService *services.FamilyService
}

// NewFamilyHandler creates a new FamilyHandler.
func NewFamilyHandler(familyService *services.FamilyService) *FamilyHandler {
	return &FamilyHandler{
		familyService: familyService,
	}
}

// CreateFamily creates a new family with the current user as a parent.
func (h *FamilyHandler) CreateFamily(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateFamilyRequest struct {
		Name       string `json:"name" binding:"required"`
		CalendarID string `json:"calendar_id"`
		Color      string `json:"color"`
	}

	var req CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	family, err := h.familyService.Create(services.CreateFamilyInput{
		Name:       req.Name,
		CalendarID: req.CalendarID,
		CreatorID:  userID,
		Color:      req.Color,
	})
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFamilyDTO(*family, true))
}

// ListFamilies returns all families the current user belongs to.
func (h *FamilyHandler) ListFamilies(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberships, err := h.familyService.ListForUser(userID)
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	families := make([]dto.FamilyDTO, len(memberships))
	for i, membership := range memberships {
		families[i] = dto.ToFamilyDTO(membership.Family, false)
	}

	c.JSON(http.StatusOK, gin.H{
		"families": families,
	})
}

// GetFamily returns a family.
// Family is already loaded by RequireFamilyAccess middleware.
func (h *FamilyHandler) GetFamily(c *gin.Context) {
	family, ok := middleware.GetFamily(c)
	if !ok {
		apierrors.InternalError(c, "Family not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyDTO(family, true))
}

// UpdateFamily applies edits to a family.
func (h *FamilyHandler) UpdateFamily(c *gin.Context) {
	family, ok := middleware.GetFamily(c)
	if !ok {
		apierrors.InternalError(c, "Family not found in context")
		return
	}

	type UpdateFamilyRequest struct {
		Name       *string `json:"name"`
		CalendarID *string `json:"calendar_id"`
	}

	var req UpdateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.familyService.Update(family.ID, services.UpdateFamilyInput{
		Name:       req.Name,
		CalendarID: req.CalendarID,
	})
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyDTO(*updated, true))
}

// DeleteFamily removes a family and all scoped data.
func (h *FamilyHandler) DeleteFamily(c *gin.Context) {
	family, ok := middleware.GetFamily(c)
	if !ok {
		apierrors.InternalError(c, "Family not found in context")
		return
	}

	if err := h.familyService.Delete(family.ID); err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Family deleted successfully",
	})
}

// JoinFamily adds the current user to a family by invite code.
func (h *FamilyHandler) JoinFamily(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type JoinFamilyRequest struct {
		InviteCode string            `json:"invite_code" binding:"required"`
		Role       models.FamilyRole `json:"role"`
		Color      string            `json:"color"`
	}

	var req JoinFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	family, err := h.familyService.Join(services.JoinInput{
		InviteCode: req.InviteCode,
		UserID:     userID,
		Role:       req.Role,
		Color:      req.Color,
	})
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyDTO(*family, false))
}

// ListMembers returns a family's roster.
func (h *FamilyHandler) ListMembers(c *gin.Context) {
	family, ok := middleware.GetFamily(c)
	if !ok {
		apierrors.InternalError(c, "Family not found in context")
		return
	}

	members, err := h.familyService.ListMembers(family.ID)
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	memberDTOs := make([]dto.FamilyMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = dto.ToFamilyMemberDTO(member)
	}

	c.JSON(http.StatusOK, gin.H{
		"members": memberDTOs,
	})
}

// RemoveMember drops a member from the family.
func (h *FamilyHandler) RemoveMember(c *gin.Context) {
	family, ok := middleware.GetFamily(c)
	if !ok {
		apierrors.InternalError(c, "Family not found in context")
		return
	}

	memberID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.familyService.RemoveMember(family.ID, memberID); err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

// RegenerateInviteCode rotates the family's invite code.
func (h *FamilyHandler) RegenerateInviteCode(c *gin.Context) {
	family, ok := middleware.GetFamily(c)
	if !ok {
		apierrors.InternalError(c, "Family not found in context")
		return
	}

	updated, err := h.familyService.RegenerateInviteCode(family.ID)
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyDTO(*updated, true))
}

// InviteMember creates an email invitation for the family.
func (h *FamilyHandler) InviteMember(c *gin.Context) {
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

	type InviteRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invitation, err := h.familyService.Invite(family.ID, userID, req.Email)
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvitationDTO(*invitation))
}

// AcceptInvitation enrolls the current user via an invitation token.
func (h *FamilyHandler) AcceptInvitation(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AcceptRequest struct {
		Token string `json:"token" binding:"required"`
	}

	var req AcceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	family, err := h.familyService.AcceptInvitation(req.Token, userID)
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyDTO(*family, false))
}

// RevokeInvitation deletes a pending invitation of the family.
func (h *FamilyHandler) RevokeInvitation(c *gin.Context) {
	family, ok := middleware.GetFamily(c)
	if !ok {
		apierrors.InternalError(c, "Family not found in context")
		return
	}

	invitationID, err := strconv.ParseUint(c.Param("invitationId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid invitation ID")
		return
	}

	if err := h.familyService.RevokeInvitation(family.ID, invitationID); err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invitation revoked successfully",
	})
}

func respondFamilyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFamilyNameRequired),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInviteEmailMissing):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrFamilyNotFound),
		errors.Is(err, services.ErrInvitationNotFound),
		errors.Is(err, services.ErrNotFamilyMember):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidInviteCode):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCannotRemoveSelf):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
