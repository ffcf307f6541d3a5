package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hearthhq/hearth-api/internal/models"
	"github.com/hearthhq/hearth-api/internal/repository"
)

type familyTestEnv struct {
	db           *gorm.DB
	service      *FamilyService
	choreService *ChoreService
	choreRepo    repository.ChoreRepository
	familyRepo   repository.FamilyRepository
	creator      *models.User
	memberUser   *models.User
	outsider     *models.User
	family       *models.Family
}

func setupFamilyTestEnv(t *testing.T) familyTestEnv {
	t.Helper()

	db := setupServiceDB(t)
	creator := createTestUser(t, db, "creator")
	memberUser := createTestUser(t, db, "member")
	outsider := createTestUser(t, db, "outsider")

	choreRepo := repository.NewChoreRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	service := NewFamilyService(familyRepo, choreRepo)

	family, err := service.Create(CreateFamilyInput{
		Name:      "The Testers",
		CreatorID: creator.ID,
		Color:     "blue",
	})
	require.NoError(t, err)

	_, err = service.Join(JoinInput{
		InviteCode: family.InviteCode,
		UserID:     memberUser.ID,
		Role:       models.RoleChild,
		Color:      "green",
	})
	require.NoError(t, err)

	return familyTestEnv{
		db:           db,
		service:      service,
		choreService: NewChoreService(choreRepo, familyRepo),
		choreRepo:    choreRepo,
		familyRepo:   familyRepo,
		creator:      creator,
		memberUser:   memberUser,
		outsider:     outsider,
		family:       family,
	}
}

func TestFamilyService_Create_EnrollsCreatorAsParent(t *testing.T) {
	env := setupFamilyTestEnv(t)

	member, err := env.familyRepo.FindMember(env.family.ID, env.creator.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleParent, member.Role)
	assert.Equal(t, "blue", member.Color)
	assert.NotEmpty(t, env.family.InviteCode)
}

func TestFamilyService_Join(t *testing.T) {
	env := setupFamilyTestEnv(t)

	joined, err := env.service.Join(JoinInput{
		InviteCode: env.family.InviteCode,
		UserID:     env.outsider.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, env.family.ID, joined.ID)

	// Unknown roles default to "other".
	member, err := env.familyRepo.FindMember(env.family.ID, env.outsider.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOther, member.Role)

	_, err = env.service.Join(JoinInput{
		InviteCode: env.family.InviteCode,
		UserID:     env.outsider.ID,
	})
	assert.ErrorIs(t, err, ErrAlreadyMember)

	_, err = env.service.Join(JoinInput{
		InviteCode: "NOPE-NOPE-NOPE",
		UserID:     env.outsider.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidInviteCode)
}

func TestFamilyService_RegenerateInviteCode(t *testing.T) {
	env := setupFamilyTestEnv(t)

	oldCode := env.family.InviteCode
	updated, err := env.service.RegenerateInviteCode(env.family.ID)
	require.NoError(t, err)
	assert.NotEqual(t, oldCode, updated.InviteCode)

	_, err = env.service.Join(JoinInput{
		InviteCode: oldCode,
		UserID:     env.outsider.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidInviteCode)
}

func TestFamilyService_RemoveMember_ScrubsRotations(t *testing.T) {
	env := setupFamilyTestEnv(t)

	idx := 1
	chore, err := env.choreService.Create(CreateChoreInput{
		FamilyID:             env.family.ID,
		Title:                "Dishes",
		Frequency:            models.FrequencyDaily,
		Rotation:             true,
		RotationMemberIDs:    []uint64{env.creator.ID, env.memberUser.ID},
		CurrentAssigneeIndex: &idx,
		CreatorID:            env.creator.ID,
	})
	require.NoError(t, err)
	require.Equal(t, env.memberUser.ID, *chore.AssignedToID)

	require.NoError(t, env.service.RemoveMember(env.family.ID, env.memberUser.ID))

	_, err = env.familyRepo.FindMember(env.family.ID, env.memberUser.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The rotation roster no longer contains the removed member, and the
	// out-of-range index was cleared.
	reloaded, err := env.choreService.Get(chore.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{env.creator.ID}, reloaded.RotationUserIDs())
	assert.Nil(t, reloaded.CurrentAssigneeIndex)
	assert.Nil(t, reloaded.AssignedToID)
}

func TestFamilyService_RemoveMember_CreatorProtected(t *testing.T) {
	env := setupFamilyTestEnv(t)

	err := env.service.RemoveMember(env.family.ID, env.creator.ID)
	assert.ErrorIs(t, err, ErrCannotRemoveSelf)

	err = env.service.RemoveMember(env.family.ID, env.outsider.ID)
	assert.ErrorIs(t, err, ErrNotFamilyMember)
}

func TestFamilyService_InvitationLifecycle(t *testing.T) {
	env := setupFamilyTestEnv(t)

	invitation, err := env.service.Invite(env.family.ID, env.creator.ID, "new@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, invitation.Token)

	family, err := env.service.AcceptInvitation(invitation.Token, env.outsider.ID)
	require.NoError(t, err)
	assert.Equal(t, env.family.ID, family.ID)

	member, err := env.familyRepo.FindMember(env.family.ID, env.outsider.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOther, member.Role)

	// The token is consumed on acceptance.
	_, err = env.service.AcceptInvitation(invitation.Token, env.memberUser.ID)
	assert.ErrorIs(t, err, ErrInvitationNotFound)
}

func TestFamilyService_RevokeInvitation_ScopedToFamily(t *testing.T) {
	env := setupFamilyTestEnv(t)

	other, err := env.service.Create(CreateFamilyInput{
		Name:      "The Others",
		CreatorID: env.outsider.ID,
	})
	require.NoError(t, err)

	invitation, err := env.service.Invite(other.ID, env.outsider.ID, "kid@example.com")
	require.NoError(t, err)

	// Revoking through a family the invitation does not belong to reads
	// as not found and leaves the invitation intact.
	err = env.service.RevokeInvitation(env.family.ID, invitation.ID)
	assert.ErrorIs(t, err, ErrInvitationNotFound)

	_, err = env.familyRepo.FindInvitationByToken(invitation.Token)
	require.NoError(t, err)

	require.NoError(t, env.service.RevokeInvitation(other.ID, invitation.ID))

	_, err = env.familyRepo.FindInvitationByToken(invitation.Token)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = env.service.RevokeInvitation(other.ID, invitation.ID)
	assert.ErrorIs(t, err, ErrInvitationNotFound)
}

func TestFamilyService_Delete_CascadesScopedData(t *testing.T) {
	env := setupFamilyTestEnv(t)

	_, err := env.choreService.Create(CreateChoreInput{
		FamilyID:  env.family.ID,
		Title:     "Dishes",
		Frequency: models.FrequencyDaily,
		CreatorID: env.creator.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.service.Delete(env.family.ID))

	_, err = env.service.Get(env.family.ID)
	assert.ErrorIs(t, err, ErrFamilyNotFound)

	chores, err := env.choreRepo.ListByFamily(env.family.ID)
	require.NoError(t, err)
	assert.Empty(t, chores)
}
