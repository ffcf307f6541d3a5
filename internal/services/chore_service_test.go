package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hearthhq/hearth-api/internal/models"
	"github.com/hearthhq/hearth-api/internal/repository"
	"github.com/hearthhq/hearth-api/internal/schedule"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Family{},
		&models.FamilyMember{},
		&models.FamilyInvitation{},
		&models.Chore{},
		&models.ChoreRotationMember{},
		&models.Todo{},
		&models.ChatMessage{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		DisplayName:  username,
		PasswordHash: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestFamily(t *testing.T, db *gorm.DB, creator *models.User, members ...*models.User) *models.Family {
	t.Helper()

	family := &models.Family{
		Name:       creator.Username + "'s family",
		InviteCode: "TEST-" + creator.Username,
		CreatorID:  creator.ID,
	}
	require.NoError(t, db.Create(family).Error)

	all := append([]*models.User{creator}, members...)
	for _, user := range all {
		require.NoError(t, db.Create(&models.FamilyMember{
			FamilyID: family.ID,
			UserID:   user.ID,
			Role:     models.RoleParent,
			JoinedAt: time.Now(),
		}).Error)
	}

	return family
}

type choreTestEnv struct {
	db      *gorm.DB
	service *ChoreService
	family  *models.Family
	alice   *models.User
	bob     *models.User
	carol   *models.User
}

func setupChoreTestEnv(t *testing.T) choreTestEnv {
	t.Helper()

	db := setupServiceDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	family := createTestFamily(t, db, alice, bob, carol)

	choreRepo := repository.NewChoreRepository(db)
	familyRepo := repository.NewFamilyRepository(db)

	return choreTestEnv{
		db:      db,
		service: NewChoreService(choreRepo, familyRepo),
		family:  family,
		alice:   alice,
		bob:     bob,
		carol:   carol,
	}
}

func TestChoreService_Create_RotationDerivesAssignee(t *testing.T) {
	env := setupChoreTestEnv(t)

	idx := 1
	chore, err := env.service.Create(CreateChoreInput{
		FamilyID:             env.family.ID,
		Title:                "Dishes",
		Frequency:            models.FrequencyDaily,
		Rotation:             true,
		RotationMemberIDs:    []uint64{env.alice.ID, env.bob.ID, env.carol.ID},
		CurrentAssigneeIndex: &idx,
		CreatorID:            env.alice.ID,
	})
	require.NoError(t, err)

	require.NotNil(t, chore.CurrentAssigneeIndex)
	assert.Equal(t, 1, *chore.CurrentAssigneeIndex)
	require.NotNil(t, chore.AssignedToID)
	assert.Equal(t, env.bob.ID, *chore.AssignedToID)
	assert.Equal(t, []uint64{env.alice.ID, env.bob.ID, env.carol.ID}, chore.RotationUserIDs())
}

func TestChoreService_Create_Validation(t *testing.T) {
	env := setupChoreTestEnv(t)

	_, err := env.service.Create(CreateChoreInput{
		FamilyID:  env.family.ID,
		Title:     "   ",
		Frequency: models.FrequencyDaily,
		CreatorID: env.alice.ID,
	})
	assert.ErrorIs(t, err, ErrChoreTitleRequired)

	_, err = env.service.Create(CreateChoreInput{
		FamilyID:  env.family.ID,
		Title:     "Dishes",
		Frequency: "fortnightly",
		CreatorID: env.alice.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidFrequency)

	_, err = env.service.Create(CreateChoreInput{
		FamilyID:          env.family.ID,
		Title:             "Dishes",
		Frequency:         models.FrequencyDaily,
		Rotation:          true,
		RotationMemberIDs: []uint64{env.alice.ID},
		CreatorID:         env.alice.ID,
	})
	assert.ErrorIs(t, err, ErrRotationTooSmall)

	stranger := createTestUser(t, env.db, "stranger")
	_, err = env.service.Create(CreateChoreInput{
		FamilyID:          env.family.ID,
		Title:             "Dishes",
		Frequency:         models.FrequencyDaily,
		Rotation:          true,
		RotationMemberIDs: []uint64{env.alice.ID, stranger.ID},
		CreatorID:         env.alice.ID,
	})
	assert.ErrorIs(t, err, ErrRotationMemberNotFound)

	idx := 3
	_, err = env.service.Create(CreateChoreInput{
		FamilyID:             env.family.ID,
		Title:                "Dishes",
		Frequency:            models.FrequencyDaily,
		Rotation:             true,
		RotationMemberIDs:    []uint64{env.alice.ID, env.bob.ID},
		CurrentAssigneeIndex: &idx,
		CreatorID:            env.alice.ID,
	})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestChoreService_Complete_AdvancesRotation(t *testing.T) {
	env := setupChoreTestEnv(t)

	idx := 1
	chore, err := env.service.Create(CreateChoreInput{
		FamilyID:             env.family.ID,
		Title:                "Trash",
		Frequency:            models.FrequencyWeekly,
		Rotation:             true,
		RotationMemberIDs:    []uint64{env.alice.ID, env.bob.ID, env.carol.ID},
		CurrentAssigneeIndex: &idx,
		CreatorID:            env.alice.ID,
	})
	require.NoError(t, err)

	completed, err := env.service.Complete(chore.ID)
	require.NoError(t, err)

	require.NotNil(t, completed.CurrentAssigneeIndex)
	assert.Equal(t, 2, *completed.CurrentAssigneeIndex)
	require.NotNil(t, completed.AssignedToID)
	assert.Equal(t, env.carol.ID, *completed.AssignedToID)

	require.NotNil(t, completed.LastCompleted)
	assert.WithinDuration(t, time.Now(), *completed.LastCompleted, 5*time.Second)
	require.NotNil(t, completed.NextDue)
	assert.WithinDuration(t,
		schedule.NextDue(models.FrequencyWeekly, *completed.LastCompleted),
		*completed.NextDue, time.Second)
}

func TestChoreService_Complete_NilIndexStartsAtHead(t *testing.T) {
	env := setupChoreTestEnv(t)

	chore, err := env.service.Create(CreateChoreInput{
		FamilyID:          env.family.ID,
		Title:             "Vacuum",
		Frequency:         models.FrequencyDaily,
		Rotation:          true,
		RotationMemberIDs: []uint64{env.alice.ID, env.bob.ID},
		CreatorID:         env.alice.ID,
	})
	require.NoError(t, err)
	require.Nil(t, chore.CurrentAssigneeIndex)
	require.Nil(t, chore.AssignedToID)

	// First completion lands on the head of the roster, then the
	// rotation cycles.
	expected := []struct {
		index    int
		assignee uint64
	}{
		{0, env.alice.ID},
		{1, env.bob.ID},
		{0, env.alice.ID},
	}
	for _, want := range expected {
		completed, err := env.service.Complete(chore.ID)
		require.NoError(t, err)
		require.NotNil(t, completed.CurrentAssigneeIndex)
		assert.Equal(t, want.index, *completed.CurrentAssigneeIndex)
		require.NotNil(t, completed.AssignedToID)
		assert.Equal(t, want.assignee, *completed.AssignedToID)
	}
}

func TestChoreService_Complete_NonRotatingKeepsAssignee(t *testing.T) {
	env := setupChoreTestEnv(t)

	chore, err := env.service.Create(CreateChoreInput{
		FamilyID:     env.family.ID,
		Title:        "Water plants",
		Frequency:    models.FrequencyMonthly,
		AssignedToID: &env.bob.ID,
		CreatorID:    env.alice.ID,
	})
	require.NoError(t, err)

	completed, err := env.service.Complete(chore.ID)
	require.NoError(t, err)

	assert.Nil(t, completed.CurrentAssigneeIndex)
	require.NotNil(t, completed.AssignedToID)
	assert.Equal(t, env.bob.ID, *completed.AssignedToID)
	require.NotNil(t, completed.LastCompleted)
	require.NotNil(t, completed.NextDue)
	assert.WithinDuration(t,
		schedule.NextDue(models.FrequencyMonthly, *completed.LastCompleted),
		*completed.NextDue, time.Second)
}

func TestChoreService_Update_TurningRotationOffClearsIndex(t *testing.T) {
	env := setupChoreTestEnv(t)

	idx := 0
	chore, err := env.service.Create(CreateChoreInput{
		FamilyID:             env.family.ID,
		Title:                "Laundry",
		Frequency:            models.FrequencyWeekly,
		Rotation:             true,
		RotationMemberIDs:    []uint64{env.alice.ID, env.bob.ID},
		CurrentAssigneeIndex: &idx,
		CreatorID:            env.alice.ID,
	})
	require.NoError(t, err)

	rotation := false
	updated, err := env.service.Update(chore.ID, UpdateChoreInput{
		Rotation: &rotation,
	})
	require.NoError(t, err)

	assert.False(t, updated.Rotation)
	assert.Nil(t, updated.CurrentAssigneeIndex)
	assert.Nil(t, updated.AssignedToID)
	assert.Empty(t, updated.RotationMembers)
}

func TestChoreService_ListGrouped_Order(t *testing.T) {
	env := setupChoreTestEnv(t)

	now := time.Now()
	overdue := now.AddDate(0, 0, -3)
	upcoming := now.AddDate(0, 0, 5)

	_, err := env.service.Create(CreateChoreInput{
		FamilyID:  env.family.ID,
		Title:     "Upcoming chore",
		Frequency: models.FrequencyWeekly,
		NextDue:   &upcoming,
		CreatorID: env.alice.ID,
	})
	require.NoError(t, err)

	_, err = env.service.Create(CreateChoreInput{
		FamilyID:  env.family.ID,
		Title:     "Overdue chore",
		Frequency: models.FrequencyWeekly,
		NextDue:   &overdue,
		CreatorID: env.alice.ID,
	})
	require.NoError(t, err)

	_, err = env.service.Create(CreateChoreInput{
		FamilyID:  env.family.ID,
		Title:     "Unscheduled chore",
		Frequency: models.FrequencyWeekly,
		CreatorID: env.alice.ID,
	})
	require.NoError(t, err)

	grouped, err := env.service.ListGrouped(env.family.ID, now)
	require.NoError(t, err)
	require.Len(t, grouped, 3)

	assert.Equal(t, "Overdue chore", grouped[0].Title)
	assert.Equal(t, schedule.StateOverdue, grouped[0].DueState)
	assert.Equal(t, "Upcoming chore", grouped[1].Title)
	assert.Equal(t, schedule.StateUpcoming, grouped[1].DueState)
	assert.Equal(t, "Unscheduled chore", grouped[2].Title)
	assert.Equal(t, schedule.StateNoDueDate, grouped[2].DueState)
}
