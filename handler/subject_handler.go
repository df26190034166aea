package handler

import (
	"log"
	"time"

	"github.com/study-droid/studyflow/dto"
	"github.com/study-droid/studyflow/model"
	"github.com/study-droid/studyflow/repository"
	"github.com/study-droid/studyflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SubjectHandler struct {
	repo *repository.SubjectsRepo
}

func NewSubjectHandler(repo *repository.SubjectsRepo) *SubjectHandler {
	return &SubjectHandler{repo: repo}
}

func (h *SubjectHandler) CreateSubject(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	subject := &model.Subject{
		SubjectID: uuid.New().String(),
		UserID:    userID.(string),
		Name:      req.Name,
		Color:     req.Color,
		CreatedAt: time.Now(),
	}

	if err := h.repo.CreateSubject(c.Request.Context(), subject); err != nil {
		log.Printf("Error creating subject for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to create subject")
		return
	}

	utils.Created(c, gin.H{
		"subject": subject,
	})
}

func (h *SubjectHandler) GetUserSubjects(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	subjects, err := h.repo.GetUserSubjects(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("Error fetching subjects for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch subjects")
		return
	}

	utils.Success(c, gin.H{
		"subjects": subjects,
	})
}

func (h *SubjectHandler) DeleteSubject(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	if err := h.repo.DeleteSubject(c.Request.Context(), c.Param("id"), userID.(string)); err != nil {
		if err.Error() == "subject not found" {
			utils.NotFound(c, "Subject not found")
			return
		}
		log.Printf("Error deleting subject for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to delete subject")
		return
	}

	utils.Success(c, gin.H{
		"message": "Subject deleted",
	})
}
