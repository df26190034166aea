package dto

import (
	"time"

	"github.com/study-droid/studyflow/model"
)

type CreateTaskRequest struct {
	Title     string         `json:"title" binding:"required"`
	Priority  model.Priority `json:"priority" binding:"omitempty,priority"`
	DueDate   *time.Time     `json:"due_date"`
	SubjectID string         `json:"subject_id"`
}

type TaskResponse struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Completed bool           `json:"completed"`
	Priority  model.Priority `json:"priority,omitempty"`
	DueDate   *time.Time     `json:"due_date,omitempty"`
	SubjectID string         `json:"subject_id,omitempty"`
	Overdue   bool           `json:"overdue"`
	CreatedAt time.Time      `json:"created_at"`
}

// Convert model.Task to TaskResponse
func ToTaskResponse(task *model.Task) TaskResponse {
	response := TaskResponse{
		ID:        task.TaskID,
		Title:     task.Title,
		Completed: task.Completed,
		Priority:  task.Priority,
		SubjectID: task.SubjectID,
		CreatedAt: task.CreatedAt,
	}

	if !task.DueDate.IsZero() {
		response.DueDate = &task.DueDate
		response.Overdue = !task.Completed && task.DueDate.Before(time.Now())
	}

	return response
}

func ToTaskResponses(tasks []*model.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = ToTaskResponse(task)
	}
	return responses
}
