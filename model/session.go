package model

import "time"

type StudySession struct {
	SessionID  string    `bson:"_id,omitempty" json:"id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	StartTime  time.Time `bson:"start_time" json:"start_time"`
	EndTime    time.Time `bson:"end_time,omitempty" json:"end_time,omitempty"`
	SubjectID  string    `bson:"subject_id,omitempty" json:"subject_id,omitempty"`
	FocusScore *int      `bson:"focus_score,omitempty" json:"focus_score,omitempty"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
	DeviceInfo string    `bson:"device_info,omitempty" json:"device_info,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// Completed reports whether the session has been finished.
// A zero EndTime means the session is still open.
func (s *StudySession) Completed() bool {
	return !s.EndTime.IsZero()
}

// DurationMinutes returns the session length in minutes. Open sessions
// are measured against the supplied reference instant.
func (s *StudySession) DurationMinutes(now time.Time) float64 {
	end := s.EndTime
	if end.IsZero() {
		end = now
	}
	minutes := end.Sub(s.StartTime).Minutes()
	if minutes < 0 {
		return 0
	}
	return minutes
}
