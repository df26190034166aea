package handler

import (
	"log"

	"github.com/study-droid/studyflow/dto"
	"github.com/study-droid/studyflow/model"
	"github.com/study-droid/studyflow/usecase"
	"github.com/study-droid/studyflow/utils"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	service *usecase.GoalsService
}

func NewGoalHandler(service *usecase.GoalsService) *GoalHandler {
	return &GoalHandler{service: service}
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	goal := &model.Goal{
		UserID:      userID.(string),
		Title:       req.Title,
		Type:        req.Type,
		TargetValue: req.TargetValue,
	}

	if err := h.service.CreateGoal(c.Request.Context(), goal); err != nil {
		switch err.Error() {
		case "invalid goal type", "target value must be positive", "goal title is required":
			utils.BadRequest(c, err.Error())
		default:
			log.Printf("Error creating goal for user %s: %v", userID, err)
			utils.InternalError(c, "Failed to create goal")
		}
		return
	}

	utils.Created(c, gin.H{
		"goal": goal,
	})
}

func (h *GoalHandler) GetActiveGoals(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	goals, err := h.service.ActiveGoals(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("Error fetching goals for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch goals")
		return
	}

	utils.Success(c, gin.H{
		"goals": goals,
	})
}

func (h *GoalHandler) UpdateProgress(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.UpdateGoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.UpdateProgress(c.Request.Context(), userID.(string), c.Param("id"), req.CurrentValue); err != nil {
		switch err.Error() {
		case "goal not found":
			utils.NotFound(c, "Goal not found")
		case "current value cannot be negative":
			utils.BadRequest(c, err.Error())
		default:
			log.Printf("Error updating goal for user %s: %v", userID, err)
			utils.InternalError(c, "Failed to update goal")
		}
		return
	}

	utils.Success(c, gin.H{
		"message": "Goal progress updated",
	})
}

func (h *GoalHandler) DeactivateGoal(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	if err := h.service.DeactivateGoal(c.Request.Context(), userID.(string), c.Param("id")); err != nil {
		if err.Error() == "goal not found" {
			utils.NotFound(c, "Goal not found")
			return
		}
		log.Printf("Error deactivating goal for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to deactivate goal")
		return
	}

	utils.Success(c, gin.H{
		"message": "Goal deactivated",
	})
}
