package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"movingday/internal/assessment"
)

const moveDateLayout = "2006-01-02"

type SubmitAssessmentRequest struct {
	MoveDate string                      `json:"moveDate"`
	Answers  map[string]assessment.Value `json:"answers"`
}

type CompleteMiniAssessmentRequest struct {
	Answers map[string]assessment.Value `json:"answers"`
}

// POST /assessments
// Persists the core assessment and generates the user's initial checklist.
// Safe to repeat: generation rewrites the same deterministic task rows.
func SubmitAssessmentHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Not authenticated"}})
			return
		}
		var req SubmitAssessmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		moveDate, err := time.Parse(moveDateLayout, req.MoveDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "moveDate must be YYYY-MM-DD"}})
			return
		}
		if req.Answers == nil {
			req.Answers = map[string]assessment.Value{}
		}

		rec := &assessment.Record{
			UserID:   userID,
			Answers:  datatypes.NewJSONType(req.Answers),
			MoveDate: moveDate,
		}
		if err := deps.Answers.SaveResponse(c.Request.Context(), rec); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to save assessment"}})
			return
		}

		tasks, err := deps.Generator.Generate(c.Request.Context(), userID, assessment.NewResponse(req.Answers), moveDate)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Task generation failed"}})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"count": len(tasks),
			"tasks": tasks,
		})
	}
}

// POST /assessments/mini/:parentId
// Completes a mini-assessment and cascades generation to its sub-tasks.
func CompleteMiniAssessmentHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Not authenticated"}})
			return
		}
		parentID := c.Param("parentId")
		var req CompleteMiniAssessmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		if req.Answers == nil {
			req.Answers = map[string]assessment.Value{}
		}

		// The move date comes from the core assessment; a cascade cannot run
		// before the user has one.
		rec, err := deps.Answers.GetResponse(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Complete the assessment first"}})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to load assessment"}})
			return
		}

		tasks, err := deps.Generator.OnMiniAssessmentCompleted(c.Request.Context(), userID, parentID, req.Answers, rec.MoveDate)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Cascade generation failed"}})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"count": len(tasks),
			"tasks": tasks,
		})
	}
}
