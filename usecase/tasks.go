package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/study-droid/studyflow/model"

	"github.com/google/uuid"
)

type TasksRepository interface {
	CreateTask(ctx context.Context, task *model.Task) error
	GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error)
	ToggleTaskComplete(ctx context.Context, taskID, userID string) (bool, error)
	DeleteTask(ctx context.Context, taskID, userID string) error
	PendingCount(ctx context.Context, userID string) (int, error)
	CompletedCount(ctx context.Context, userID string) (int, error)
}

type TasksService struct {
	repo TasksRepository
	now  func() time.Time
}

func NewTasksService(repo TasksRepository) *TasksService {
	return &TasksService{repo: repo, now: time.Now}
}

// Get the user's tasks, sorted for display
func (svc *TasksService) GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	tasks, err := svc.repo.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := svc.now()
	sort.Slice(tasks, func(i, j int) bool {
		// Incomplete tasks first
		if tasks[i].Completed != tasks[j].Completed {
			return !tasks[i].Completed
		}

		// Then overdue incomplete tasks
		if !tasks[i].Completed && !tasks[j].Completed {
			iOverdue := !tasks[i].DueDate.IsZero() && tasks[i].DueDate.Before(now)
			jOverdue := !tasks[j].DueDate.IsZero() && tasks[j].DueDate.Before(now)
			if iOverdue != jOverdue {
				return iOverdue
			}
		}

		// Then by priority
		if tasks[i].Priority != tasks[j].Priority {
			return priorityWeight(tasks[i].Priority) > priorityWeight(tasks[j].Priority)
		}

		// Then by due date (if both have one)
		if !tasks[i].DueDate.IsZero() && !tasks[j].DueDate.IsZero() {
			return tasks[i].DueDate.Before(tasks[j].DueDate)
		}

		// Finally by creation date
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	return tasks, nil
}

// Create Task
func (svc *TasksService) CreateTask(ctx context.Context, task *model.Task) error {
	if task.UserID == "" {
		return errors.New("user ID is required")
	}
	if task.Title == "" {
		return errors.New("task title is required")
	}

	if err := validatePriority(task.Priority); err != nil {
		return err
	}

	now := svc.now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = now
	}
	if task.TaskID == "" {
		task.TaskID = uuid.New().String()
	}

	if !task.DueDate.IsZero() && task.DueDate.Before(now) {
		return errors.New("due date cannot be in the past")
	}

	return svc.repo.CreateTask(ctx, task)
}

func (svc *TasksService) ToggleTaskComplete(ctx context.Context, userID, taskID string) (bool, error) {
	return svc.repo.ToggleTaskComplete(ctx, taskID, userID)
}

func (svc *TasksService) DeleteTask(ctx context.Context, userID, taskID string) error {
	return svc.repo.DeleteTask(ctx, taskID, userID)
}

// TaskCounts returns how many tasks are pending and completed
func (svc *TasksService) TaskCounts(ctx context.Context, userID string) (pending, completed int, err error) {
	pending, err = svc.repo.PendingCount(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	completed, err = svc.repo.CompletedCount(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return pending, completed, nil
}

func priorityWeight(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return 3
	case model.PriorityMedium:
		return 2
	case model.PriorityLow:
		return 1
	default:
		return 0
	}
}

func validatePriority(p model.Priority) error {
	switch p {
	case "", model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return nil
	default:
		return errors.New("invalid priority")
	}
}
