package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

type Task struct {
	TaskID    string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Title     string    `bson:"title" json:"title" binding:"required"`
	Completed bool      `bson:"completed" json:"completed"`
	Priority  Priority  `bson:"priority,omitempty" json:"priority,omitempty"`
	DueDate   time.Time `bson:"due_date,omitempty" json:"due_date,omitempty"`
	SubjectID string    `bson:"subject_id,omitempty" json:"subject_id,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
