package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/study-droid/studyflow/model"

	"github.com/google/uuid"
)

// SessionsRepository is the persistence surface the service needs.
type SessionsRepository interface {
	CreateSession(ctx context.Context, session *model.StudySession) error
	FindSession(ctx context.Context, sessionID, userID string) (*model.StudySession, error)
	SessionsInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.StudySession, error)
	FinishSession(ctx context.Context, sessionID, userID string, end time.Time, focusScore *int, notes string) error
	DeleteSession(ctx context.Context, sessionID, userID string) error
}

type SessionsService struct {
	repo SessionsRepository
	now  func() time.Time
}

func NewSessionsService(repo SessionsRepository) *SessionsService {
	return &SessionsService{repo: repo, now: time.Now}
}

// StartSession opens a new study session starting now.
func (svc *SessionsService) StartSession(ctx context.Context, userID, subjectID, notes, deviceInfo string) (*model.StudySession, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}

	now := svc.now()
	session := &model.StudySession{
		SessionID:  uuid.New().String(),
		UserID:     userID,
		StartTime:  now,
		SubjectID:  subjectID,
		Notes:      notes,
		DeviceInfo: deviceInfo,
		CreatedAt:  now,
	}

	if err := svc.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// FinishSession closes an open session, recording the end time and an
// optional focus score. A session can only be finished once.
func (svc *SessionsService) FinishSession(ctx context.Context, userID, sessionID string, focusScore *int, notes string) (*model.StudySession, error) {
	session, err := svc.repo.FindSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("session not found")
	}
	if session.Completed() {
		return nil, errors.New("session is already finished")
	}

	if focusScore != nil && (*focusScore < 0 || *focusScore > 100) {
		return nil, errors.New("focus score must be between 0 and 100")
	}

	end := svc.now()
	if !end.After(session.StartTime) {
		return nil, errors.New("session end must be after its start")
	}

	if err := svc.repo.FinishSession(ctx, sessionID, userID, end, focusScore, notes); err != nil {
		return nil, err
	}

	session.EndTime = end
	session.FocusScore = focusScore
	if notes != "" {
		session.Notes = notes
	}
	return session, nil
}

// ListSessions returns the user's sessions in [start, end]. A zero
// range defaults to the last 30 days.
func (svc *SessionsService) ListSessions(ctx context.Context, userID string, start, end time.Time) ([]*model.StudySession, error) {
	if end.IsZero() {
		end = svc.now()
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -30)
	}
	if start.After(end) {
		return nil, errors.New("start must be before end")
	}
	return svc.repo.SessionsInRange(ctx, userID, start, end)
}

func (svc *SessionsService) DeleteSession(ctx context.Context, userID, sessionID string) error {
	return svc.repo.DeleteSession(ctx, sessionID, userID)
}
