package dto

import (
	"time"

	"github.com/hearthhq/hearth-api/internal/models"
	"github.com/hearthhq/hearth-api/internal/palette"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64 `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// FamilyDTO represents a family in API responses
type FamilyDTO struct {
	ID         uint64            `json:"id"`
	Name       string            `json:"name"`
	InviteCode string            `json:"invite_code,omitempty"`
	CalendarID string            `json:"calendar_id,omitempty"`
	CreatorID  uint64            `json:"creator_id"`
	CreatedAt  time.Time         `json:"created_at"`
	Members    []FamilyMemberDTO `json:"members,omitempty"`
}

// FamilyMemberDTO represents a family member in API responses.
// ColorHex is the member's color tag resolved to an RGB value.
type FamilyMemberDTO struct {
	FamilyID uint64            `json:"family_id"`
	UserID   uint64            `json:"user_id"`
	Role     models.FamilyRole `json:"role"`
	Color    string            `json:"color"`
	ColorHex string            `json:"color_hex"`
	JoinedAt time.Time         `json:"joined_at"`
	User     *UserDTO          `json:"user,omitempty"`
}

// InvitationDTO represents a pending family invitation in API responses
type InvitationDTO struct {
	ID        uint64    `json:"id"`
	FamilyID  uint64    `json:"family_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	InvitedBy *UserDTO  `json:"invited_by,omitempty"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	}
}

// ToFamilyDTO converts a Family model to FamilyDTO
func ToFamilyDTO(family models.Family, includeInviteCode bool) FamilyDTO {
	dto := FamilyDTO{
		ID:         family.ID,
		Name:       family.Name,
		CalendarID: family.CalendarID,
		CreatorID:  family.CreatorID,
		CreatedAt:  family.CreatedAt,
	}
	if includeInviteCode {
		dto.InviteCode = family.InviteCode
	}

	// Include members if preloaded
	if len(family.Members) > 0 {
		dto.Members = make([]FamilyMemberDTO, len(family.Members))
		for i, member := range family.Members {
			dto.Members[i] = ToFamilyMemberDTO(member)
		}
	}

	return dto
}

// ToFamilyMemberDTO converts a FamilyMember model to FamilyMemberDTO
func ToFamilyMemberDTO(member models.FamilyMember) FamilyMemberDTO {
	dto := FamilyMemberDTO{
		FamilyID: member.FamilyID,
		UserID:   member.UserID,
		Role:     member.Role,
		Color:    member.Color,
		ColorHex: palette.Hex(member.Color),
		JoinedAt: member.JoinedAt,
	}

	// Include user if preloaded
	if member.User.ID != 0 {
		user := ToUserDTO(member.User)
		dto.User = &user
	}

	return dto
}

// ToInvitationDTO converts a FamilyInvitation model to InvitationDTO
func ToInvitationDTO(invitation models.FamilyInvitation) InvitationDTO {
	dto := InvitationDTO{
		ID:        invitation.ID,
		FamilyID:  invitation.FamilyID,
		Email:     invitation.Email,
		Token:     invitation.Token,
		CreatedAt: invitation.CreatedAt,
	}

	// Include inviter if preloaded
	if invitation.InvitedBy.ID != 0 {
		invitedBy := ToUserDTO(invitation.InvitedBy)
		dto.InvitedBy = &invitedBy
	}

	return dto
}
