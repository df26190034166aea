package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/study-droid/studyflow/model"

	"github.com/google/uuid"
)

type GoalsRepository interface {
	CreateGoal(ctx context.Context, goal *model.Goal) error
	GetActiveGoals(ctx context.Context, userID string) ([]*model.Goal, error)
	UpdateGoalProgress(ctx context.Context, goalID, userID string, currentValue float64) error
	DeactivateGoal(ctx context.Context, goalID, userID string) error
}

type GoalsService struct {
	repo GoalsRepository
	now  func() time.Time
}

func NewGoalsService(repo GoalsRepository) *GoalsService {
	return &GoalsService{repo: repo, now: time.Now}
}

func (svc *GoalsService) CreateGoal(ctx context.Context, goal *model.Goal) error {
	if goal.UserID == "" {
		return errors.New("user ID is required")
	}
	if goal.Title == "" {
		return errors.New("goal title is required")
	}
	if err := validateGoalType(goal.Type); err != nil {
		return err
	}
	if goal.TargetValue <= 0 {
		return errors.New("target value must be positive")
	}

	now := svc.now()
	if goal.GoalID == "" {
		goal.GoalID = uuid.New().String()
	}
	goal.IsActive = true
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = now
	}
	goal.UpdatedAt = now

	return svc.repo.CreateGoal(ctx, goal)
}

func (svc *GoalsService) ActiveGoals(ctx context.Context, userID string) ([]*model.Goal, error) {
	return svc.repo.GetActiveGoals(ctx, userID)
}

func (svc *GoalsService) UpdateProgress(ctx context.Context, userID, goalID string, currentValue float64) error {
	if currentValue < 0 {
		return errors.New("current value cannot be negative")
	}
	return svc.repo.UpdateGoalProgress(ctx, goalID, userID, currentValue)
}

func (svc *GoalsService) DeactivateGoal(ctx context.Context, userID, goalID string) error {
	return svc.repo.DeactivateGoal(ctx, goalID, userID)
}

func validateGoalType(t model.GoalType) error {
	switch t {
	case model.GoalWeeklyHours, model.GoalDailySessions, model.GoalCompletionRate, model.GoalCustom:
		return nil
	default:
		return errors.New("invalid goal type")
	}
}
