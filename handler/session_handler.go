package handler

import (
	"log"
	"time"

	"github.com/study-droid/studyflow/dto"
	"github.com/study-droid/studyflow/usecase"
	"github.com/study-droid/studyflow/utils"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	service *usecase.SessionsService
}

func NewSessionHandler(service *usecase.SessionsService) *SessionHandler {
	return &SessionHandler{service: service}
}

// StartSession opens a study session for the authenticated user
func (h *SessionHandler) StartSession(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	deviceInfo := utils.DescribeDevice(c.Request.UserAgent())

	session, err := h.service.StartSession(c.Request.Context(), userID.(string), req.SubjectID, req.Notes, deviceInfo)
	if err != nil {
		log.Printf("Error starting session for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to start session")
		return
	}

	utils.Created(c, gin.H{
		"session": dto.ToSessionResponse(session),
	})
}

// FinishSession closes an open session
func (h *SessionHandler) FinishSession(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.FinishSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.service.FinishSession(c.Request.Context(), userID.(string), c.Param("id"), req.FocusScore, req.Notes)
	if err != nil {
		switch err.Error() {
		case "session not found":
			utils.NotFound(c, "Session not found")
		case "session is already finished":
			utils.BadRequest(c, "Session is already finished")
		case "focus score must be between 0 and 100":
			utils.BadRequest(c, "Focus score must be between 0 and 100")
		default:
			log.Printf("Error finishing session for user %s: %v", userID, err)
			utils.InternalError(c, "Failed to finish session")
		}
		return
	}

	utils.Success(c, gin.H{
		"session": dto.ToSessionResponse(session),
	})
}

// ListSessions returns sessions in an optional RFC3339 start/end window
func (h *SessionHandler) ListSessions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var start, end time.Time
	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.BadRequest(c, "Invalid start time, expected RFC3339")
			return
		}
		start = parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.BadRequest(c, "Invalid end time, expected RFC3339")
			return
		}
		end = parsed
	}

	sessions, err := h.service.ListSessions(c.Request.Context(), userID.(string), start, end)
	if err != nil {
		if err.Error() == "start must be before end" {
			utils.BadRequest(c, "Start must be before end")
			return
		}
		log.Printf("Error listing sessions for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to list sessions")
		return
	}

	utils.Success(c, gin.H{
		"sessions": dto.ToSessionResponses(sessions),
	})
}

// DeleteSession removes one of the user's sessions
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	if err := h.service.DeleteSession(c.Request.Context(), userID.(string), c.Param("id")); err != nil {
		if err.Error() == "session not found" {
			utils.NotFound(c, "Session not found")
			return
		}
		log.Printf("Error deleting session for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to delete session")
		return
	}

	utils.Success(c, gin.H{
		"message": "Session deleted",
	})
}
