package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hearthhq/hearth-api/internal/constants"
	"github.com/hearthhq/hearth-api/internal/database"
	"github.com/hearthhq/hearth-api/internal/dto"
	"github.com/hearthhq/hearth-api/internal/models"
	"github.com/hearthhq/hearth-api/internal/repository"
	"github.com/hearthhq/hearth-api/internal/services"
)

// ChoreHandlerTestSuite defines the test suite for ChoreHandler
type ChoreHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *ChoreHandler
}

// SetupTest runs before each test
func (suite *ChoreHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Family{},
		&models.FamilyMember{},
		&models.Chore{},
		&models.ChoreRotationMember{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	choreRepo := repository.NewChoreRepository(suite.db)
	familyRepo := repository.NewFamilyRepository(suite.db)
	suite.handler = NewChoreHandler(services.NewChoreService(choreRepo, familyRepo))

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ChoreHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *ChoreHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		DisplayName:  username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *ChoreHandlerTestSuite) createTestFamily(name string, members ...*models.User) *models.Family {
	family := &models.Family{
		Name:       name,
		InviteCode: name + "_CODE",
		CreatorID:  members[0].ID,
	}
	suite.db.Create(family)
	for _, user := range members {
		suite.db.Create(&models.FamilyMember{
			FamilyID: family.ID,
			UserID:   user.ID,
			Role:     models.RoleParent,
			JoinedAt: time.Now(),
		})
	}
	return family
}

// Helper function to create a context with the middleware-loaded
// family and user
func (suite *ChoreHandlerTestSuite) createFamilyContext(method, url string, body []byte, family *models.Family, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)
	c.Set(constants.ContextKeyFamily, *family)

	return c, w
}

func (suite *ChoreHandlerTestSuite) TestCreateChore() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	family := suite.createTestFamily("Testers", alice, bob)

	payload := map[string]interface{}{
		"title":                  "Dishes",
		"frequency":              "weekly",
		"rotation":               true,
		"rotation_member_ids":    []uint64{alice.ID, bob.ID},
		"current_assignee_index": 0,
	}
	body, err := json.Marshal(payload)
	suite.Require().NoError(err)

	c, w := suite.createFamilyContext(http.MethodPost, "/api/families/1/chores", body, family, alice.ID)
	suite.handler.CreateChore(c)

	suite.Equal(http.StatusCreated, w.Code)

	var response dto.ChoreDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("Dishes", response.Title)
	suite.Require().NotNil(response.AssignedToID)
	suite.Equal(alice.ID, *response.AssignedToID)
	suite.Len(response.RotationMembers, 2)
}

func (suite *ChoreHandlerTestSuite) TestCreateChore_RotationTooSmall() {
	alice := suite.createTestUser("alice")
	family := suite.createTestFamily("Testers", alice)

	payload := map[string]interface{}{
		"title":               "Dishes",
		"frequency":           "weekly",
		"rotation":            true,
		"rotation_member_ids": []uint64{alice.ID},
	}
	body, err := json.Marshal(payload)
	suite.Require().NoError(err)

	c, w := suite.createFamilyContext(http.MethodPost, "/api/families/1/chores", body, family, alice.ID)
	suite.handler.CreateChore(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ChoreHandlerTestSuite) TestCompleteChore() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	family := suite.createTestFamily("Testers", alice, bob)

	idx := 0
	chore := &models.Chore{
		FamilyID:             family.ID,
		Title:                "Trash",
		Frequency:            models.FrequencyWeekly,
		Rotation:             true,
		CurrentAssigneeIndex: &idx,
		AssignedToID:         &alice.ID,
		CreatorID:            alice.ID,
	}
	suite.db.Create(chore)
	suite.db.Create(&models.ChoreRotationMember{ChoreID: chore.ID, Position: 0, UserID: alice.ID})
	suite.db.Create(&models.ChoreRotationMember{ChoreID: chore.ID, Position: 1, UserID: bob.ID})

	c, w := suite.createFamilyContext(http.MethodPost, "/api/chores/1/complete", nil, family, alice.ID)
	c.Set(constants.ContextKeyChore, *chore)
	suite.handler.CompleteChore(c)

	suite.Equal(http.StatusOK, w.Code)

	var response dto.ChoreDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().NotNil(response.CurrentAssigneeIndex)
	suite.Equal(1, *response.CurrentAssigneeIndex)
	suite.Require().NotNil(response.AssignedToID)
	suite.Equal(bob.ID, *response.AssignedToID)
	suite.NotNil(response.LastCompleted)
	suite.NotNil(response.NextDue)
}

func (suite *ChoreHandlerTestSuite) TestListChores_Grouped() {
	alice := suite.createTestUser("alice")
	family := suite.createTestFamily("Testers", alice)

	overdue := time.Now().AddDate(0, 0, -3)
	suite.db.Create(&models.Chore{
		FamilyID:  family.ID,
		Title:     "Overdue chore",
		Frequency: models.FrequencyWeekly,
		NextDue:   &overdue,
		CreatorID: alice.ID,
	})
	suite.db.Create(&models.Chore{
		FamilyID:  family.ID,
		Title:     "Unscheduled chore",
		Frequency: models.FrequencyDaily,
		CreatorID: alice.ID,
	})

	c, w := suite.createFamilyContext(http.MethodGet, "/api/families/1/chores", nil, family, alice.ID)
	suite.handler.ListChores(c)

	suite.Equal(http.StatusOK, w.Code)

	var response dto.ChoreListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Chores, 2)
	suite.Equal("Overdue chore", response.Chores[0].Title)
	suite.Equal("overdue", response.Chores[0].DueState)
	suite.Equal("Unscheduled chore", response.Chores[1].Title)
	suite.Equal("no_due_date", response.Chores[1].DueState)
}

func TestChoreHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ChoreHandlerTestSuite))
}
