package dto

import "github.com/study-droid/studyflow/model"

type CreateGoalRequest struct {
	Title       string         `json:"title" binding:"required"`
	Type        model.GoalType `json:"type" binding:"required,goaltype"`
	TargetValue float64        `json:"target_value" binding:"required,gt=0"`
}

type UpdateGoalProgressRequest struct {
	CurrentValue float64 `json:"current_value" binding:"gte=0"`
}
