package model

import "time"

type GoalType string

const (
	GoalWeeklyHours    GoalType = "weekly_hours"
	GoalDailySessions  GoalType = "daily_sessions"
	GoalCompletionRate GoalType = "completion_rate"
	GoalCustom         GoalType = "custom"
)

type Goal struct {
	GoalID       string    `bson:"_id,omitempty" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	Title        string    `bson:"title" json:"title" binding:"required"`
	Type         GoalType  `bson:"type" json:"type"`
	TargetValue  float64   `bson:"target_value" json:"target_value"`
	CurrentValue float64   `bson:"current_value" json:"current_value"`
	IsActive     bool      `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
