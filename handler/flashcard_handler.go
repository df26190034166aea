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

type FlashcardHandler struct {
	repo *repository.FlashcardsRepo
}

func NewFlashcardHandler(repo *repository.FlashcardsRepo) *FlashcardHandler {
	return &FlashcardHandler{repo: repo}
}

// RecordAttempt stores one flashcard answer
func (h *FlashcardHandler) RecordAttempt(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.RecordAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	attempt := &model.FlashcardAttempt{
		AttemptID:   uuid.New().String(),
		UserID:      userID.(string),
		FlashcardID: req.FlashcardID,
		IsCorrect:   req.IsCorrect,
		TimeSpent:   req.TimeSpent,
		AttemptedAt: time.Now(),
	}

	if err := h.repo.RecordAttempt(c.Request.Context(), attempt); err != nil {
		log.Printf("Error recording attempt for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to record attempt")
		return
	}

	utils.Created(c, gin.H{
		"attempt": attempt,
	})
}

// ListAttempts returns the user's attempts over the last 30 days
func (h *FlashcardHandler) ListAttempts(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -30)

	attempts, err := h.repo.AttemptsInRange(c.Request.Context(), userID.(string), start, end)
	if err != nil {
		log.Printf("Error fetching attempts for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch attempts")
		return
	}

	utils.Success(c, gin.H{
		"attempts": attempts,
	})
}
