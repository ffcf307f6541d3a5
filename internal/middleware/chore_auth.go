package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hearthhq/hearth-api/internal/constants"
	"github.com/hearthhq/hearth-api/internal/database"
	"github.com/hearthhq/hearth-api/internal/models"
)

// RequireChoreAccess checks if the user has access to a chore.
// User must be a member of the chore's family.
func RequireChoreAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		choreIDStr := c.Param("id")
		choreID, err := strconv.ParseUint(choreIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid chore ID",
			})
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var chore models.Chore
		if err := database.GetDB().
			Preload("RotationMembers", func(db *gorm.DB) *gorm.DB {
				return db.Order("position ASC")
			}).
			Preload("AssignedTo").
			Preload("Creator").
			First(&chore, choreID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Chore not found",
			})
			c.Abort()
			return
		}

		// Return 404 instead of 403 to avoid leaking chore existence
		var member models.FamilyMember
		err = database.GetDB().
			Where("family_id = ? AND user_id = ?", chore.FamilyID, userID).
			First(&member).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Chore not found",
			})
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyChore, chore)
		c.Next()
	}
}

// GetChore retrieves the chore loaded by RequireChoreAccess
func GetChore(c *gin.Context) (models.Chore, bool) {
	choreInterface, exists := c.Get(constants.ContextKeyChore)
	if !exists {
		return models.Chore{}, false
	}
	chore, ok := choreInterface.(models.Chore)
	return chore, ok
}
