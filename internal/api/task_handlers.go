package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"movingday/internal/task"
)

// GET /tasks
func ListTasksHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Not authenticated"}})
			return
		}
		tasks, err := deps.Tasks.ListByUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to list tasks"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"count": len(tasks),
			"tasks": tasks,
		})
	}
}

type UpdateTaskStatusRequest struct {
	Status task.Status `json:"status"`
}

// PATCH /tasks/:id/status
func UpdateTaskStatusHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Not authenticated"}})
			return
		}
		var req UpdateTaskStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		if !req.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Unknown status"}})
			return
		}
		taskID := c.Param("id")
		if err := deps.Tasks.UpdateStatus(c.Request.Context(), userID, taskID, req.Status); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Task not found"}})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to update task"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": taskID, "status": req.Status})
	}
}
