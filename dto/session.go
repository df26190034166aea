package dto

import (
	"time"

	"github.com/study-droid/studyflow/model"
)

type StartSessionRequest struct {
	SubjectID string `json:"subject_id"`
	Notes     string `json:"notes"`
}

type FinishSessionRequest struct {
	FocusScore *int   `json:"focus_score" binding:"omitempty,gte=0,lte=100"`
	Notes      string `json:"notes"`
}

type SessionResponse struct {
	ID              string     `json:"id"`
	SubjectID       string     `json:"subject_id,omitempty"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	FocusScore      *int       `json:"focus_score,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	DeviceInfo      string     `json:"device_info,omitempty"`
	Completed       bool       `json:"completed"`
}

// Convert model.StudySession to SessionResponse
func ToSessionResponse(session *model.StudySession) SessionResponse {
	response := SessionResponse{
		ID:         session.SessionID,
		SubjectID:  session.SubjectID,
		StartTime:  session.StartTime,
		FocusScore: session.FocusScore,
		Notes:      session.Notes,
		DeviceInfo: session.DeviceInfo,
		Completed:  session.Completed(),
	}

	if session.Completed() {
		response.EndTime = &session.EndTime
		minutes := int(session.EndTime.Sub(session.StartTime).Minutes())
		response.DurationMinutes = &minutes
	}

	return response
}

func ToSessionResponses(sessions []*model.StudySession) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = ToSessionResponse(session)
	}
	return responses
}
