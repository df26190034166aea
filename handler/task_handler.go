package handler

import (
	"log"

	"github.com/study-droid/studyflow/dto"
	"github.com/study-droid/studyflow/model"
	"github.com/study-droid/studyflow/usecase"
	"github.com/study-droid/studyflow/utils"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	service *usecase.TasksService
}

func NewTaskHandler(service *usecase.TasksService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	task := &model.Task{
		UserID:    userID.(string),
		Title:     req.Title,
		Priority:  req.Priority,
		SubjectID: req.SubjectID,
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}

	if err := h.service.CreateTask(c.Request.Context(), task); err != nil {
		switch err.Error() {
		case "due date cannot be in the past", "invalid priority", "task title is required":
			utils.BadRequest(c, err.Error())
		default:
			log.Printf("Error creating task for user %s: %v", userID, err)
			utils.InternalError(c, "Failed to create task")
		}
		return
	}

	utils.Created(c, gin.H{
		"task": dto.ToTaskResponse(task),
	})
}

func (h *TaskHandler) GetUserTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	tasks, err := h.service.GetUserTasks(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("Error fetching tasks for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch tasks")
		return
	}

	utils.Success(c, gin.H{
		"tasks": dto.ToTaskResponses(tasks),
	})
}

// GetTaskSummary returns pending/completed counts for the dashboard header
func (h *TaskHandler) GetTaskSummary(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	pending, completed, err := h.service.TaskCounts(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("Error counting tasks for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to count tasks")
		return
	}

	utils.Success(c, gin.H{
		"pending":   pending,
		"completed": completed,
	})
}

func (h *TaskHandler) ToggleTaskComplete(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	completed, err := h.service.ToggleTaskComplete(c.Request.Context(), userID.(string), c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Task not found")
		return
	}

	utils.Success(c, gin.H{
		"completed": completed,
	})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), userID.(string), c.Param("id")); err != nil {
		if err.Error() == "task not found" {
			utils.NotFound(c, "Task not found")
			return
		}
		log.Printf("Error deleting task for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to delete task")
		return
	}

	utils.Success(c, gin.H{
		"message": "Task deleted",
	})
}
