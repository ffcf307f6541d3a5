package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hearthhq/hearth-api/internal/constants"
	"github.com/hearthhq/hearth-api/internal/database"
	"github.com/hearthhq/hearth-api/internal/models"
)

// RequireTodoAccess checks if the user has access to a to-do.
// User must be a member of the to-do's family.
func RequireTodoAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		todoIDStr := c.Param("id")
		todoID, err := strconv.ParseUint(todoIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid todo ID",
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

		var todo models.Todo
		if err := database.GetDB().
			Preload("Creator").
			Preload("AssignedTo").
			First(&todo, todoID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Todo not found",
			})
			c.Abort()
			return
		}

		// Return 404 instead of 403 to avoid leaking todo existence
		var member models.FamilyMember
		err = database.GetDB().
			Where("family_id = ? AND user_id = ?", todo.FamilyID, userID).
			First(&member).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Todo not found",
			})
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTodo, todo)
		c.Next()
	}
}

// GetTodo retrieves the to-do loaded by RequireTodoAccess
func GetTodo(c *gin.Context) (models.Todo, bool) {
	todoInterface, exists := c.Get(constants.ContextKeyTodo)
	if !exists {
		return models.Todo{}, false
	}
	todo, ok := todoInterface.(models.Todo)
	return todo, ok
}
