package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hearthhq/hearth-api/internal/constants"
	"github.com/hearthhq/hearth-api/internal/database"
	"github.com/hearthhq/hearth-api/internal/models"
)

// RequireFamilyAccess checks if the user is a member of the family
func RequireFamilyAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		familyIDStr := c.Param("id")
		familyID, err := strconv.ParseUint(familyIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid family ID",
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

		var family models.Family
		if err := database.GetDB().First(&family, familyID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Family not found",
			})
			c.Abort()
			return
		}

		// Return 404 instead of 403 to avoid leaking family existence
		var member models.FamilyMember
		err = database.GetDB().Where("family_id = ? AND user_id = ?", familyID, userID).First(&member).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Family not found",
			})
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyFamily, family)
		c.Set(constants.ContextKeyFamilyMember, member)
		c.Next()
	}
}

// RequireFamilyParent checks if the user has the parent role in the family
func RequireFamilyParent() gin.HandlerFunc {
	return func(c *gin.Context) {
		memberInterface, exists := c.Get(constants.ContextKeyFamilyMember)
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Family access required",
			})
			c.Abort()
			return
		}

		member, ok := memberInterface.(models.FamilyMember)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Invalid family member data",
			})
			c.Abort()
			return
		}

		if member.Role != models.RoleParent {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only parents can perform this action",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetFamily retrieves the family loaded by RequireFamilyAccess
func GetFamily(c *gin.Context) (models.Family, bool) {
	familyInterface, exists := c.Get(constants.ContextKeyFamily)
	if !exists {
		return models.Family{}, false
	}
	family, ok := familyInterface.(models.Family)
	return family, ok
}
