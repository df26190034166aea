package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/study-droid/studyflow/model"
)

type fakeTasksRepo struct {
	tasks   []*model.Task
	created []*model.Task
	toggled []string
}

func (f *fakeTasksRepo) CreateTask(ctx context.Context, task *model.Task) error {
	f.created = append(f.created, task)
	return nil
}

func (f *fakeTasksRepo) GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	return f.tasks, nil
}

func (f *fakeTasksRepo) ToggleTaskComplete(ctx context.Context, taskID, userID string) (bool, error) {
	f.toggled = append(f.toggled, taskID)
	return true, nil
}

func (f *fakeTasksRepo) DeleteTask(ctx context.Context, taskID, userID string) error {
	return nil
}

func (f *fakeTasksRepo) PendingCount(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, task := range f.tasks {
		if !task.Completed {
			count++
		}
	}
	return count, nil
}

func (f *fakeTasksRepo) CompletedCount(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, task := range f.tasks {
		if task.Completed {
			count++
		}
	}
	return count, nil
}

func TestGetUserTasksOrdering(t *testing.T) {
	due := func(offset int) time.Time { return testNow.AddDate(0, 0, offset) }

	repo := &fakeTasksRepo{
		tasks: []*model.Task{
			{TaskID: "done", Title: "done", Completed: true, Priority: model.PriorityHigh},
			{TaskID: "low-soon", Title: "low soon", Priority: model.PriorityLow, DueDate: due(1), CreatedAt: testNow},
			{TaskID: "high-later", Title: "high later", Priority: model.PriorityHigh, DueDate: due(5), CreatedAt: testNow},
			{TaskID: "overdue", Title: "overdue", Priority: model.PriorityLow, DueDate: due(-2), CreatedAt: testNow},
			{TaskID: "high-soon", Title: "high soon", Priority: model.PriorityHigh, DueDate: due(2), CreatedAt: testNow},
		},
	}
	svc := NewTasksService(repo)
	svc.now = func() time.Time { return testNow }

	tasks, err := svc.GetUserTasks(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetUserTasks: %v", err)
	}

	want := []string{"overdue", "high-soon", "high-later", "low-soon", "done"}
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
	}
	for i, id := range want {
		if tasks[i].TaskID != id {
			t.Errorf("position %d: got %s, want %s", i, tasks[i].TaskID, id)
		}
	}
}

func TestCreateTask(t *testing.T) {
	newService := func() (*fakeTasksRepo, *TasksService) {
		repo := &fakeTasksRepo{}
		svc := NewTasksService(repo)
		svc.now = func() time.Time { return testNow }
		return repo, svc
	}

	t.Run("FillsDefaults", func(t *testing.T) {
		repo, svc := newService()
		task := &model.Task{UserID: "user-1", Title: "read chapter 3", Priority: model.PriorityMedium}
		if err := svc.CreateTask(context.Background(), task); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
		if task.TaskID == "" {
			t.Error("task should get an ID")
		}
		if !task.CreatedAt.Equal(testNow) {
			t.Errorf("CreatedAt = %v, want %v", task.CreatedAt, testNow)
		}
		if len(repo.created) != 1 {
			t.Error("task should have been persisted")
		}
	})

	t.Run("RejectsPastDueDate", func(t *testing.T) {
		_, svc := newService()
		task := &model.Task{UserID: "user-1", Title: "t", DueDate: testNow.AddDate(0, 0, -1)}
		if err := svc.CreateTask(context.Background(), task); err == nil {
			t.Error("expected error for a due date in the past")
		}
	})

	t.Run("RejectsUnknownPriority", func(t *testing.T) {
		_, svc := newService()
		task := &model.Task{UserID: "user-1", Title: "t", Priority: "URGENT"}
		if err := svc.CreateTask(context.Background(), task); err == nil {
			t.Error("expected error for an unknown priority")
		}
	})

	t.Run("RequiresTitle", func(t *testing.T) {
		_, svc := newService()
		if err := svc.CreateTask(context.Background(), &model.Task{UserID: "user-1"}); err == nil {
			t.Error("expected error for empty title")
		}
	})
}

func TestTaskCounts(t *testing.T) {
	repo := &fakeTasksRepo{
		tasks: []*model.Task{
			{TaskID: "a", Completed: true},
			{TaskID: "b"},
			{TaskID: "c"},
		},
	}
	svc := NewTasksService(repo)

	pending, completed, err := svc.TaskCounts(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("TaskCounts: %v", err)
	}
	if pending != 2 || completed != 1 {
		t.Errorf("counts = %d pending / %d completed, want 2/1", pending, completed)
	}
}

func TestValidateGoal(t *testing.T) {
	repo := &fakeGoalsRepo{}
	svc := NewGoalsService(repo)
	svc.now = func() time.Time { return testNow }

	t.Run("ValidGoalActivates", func(t *testing.T) {
		goal := &model.Goal{UserID: "user-1", Title: "study more", Type: model.GoalWeeklyHours, TargetValue: 15}
		if err := svc.CreateGoal(context.Background(), goal); err != nil {
			t.Fatalf("CreateGoal: %v", err)
		}
		if !goal.IsActive {
			t.Error("a new goal should start active")
		}
	})

	t.Run("RejectsBadType", func(t *testing.T) {
		goal := &model.Goal{UserID: "user-1", Title: "t", Type: "monthly_hours", TargetValue: 1}
		if err := svc.CreateGoal(context.Background(), goal); err == nil {
			t.Error("expected error for unknown goal type")
		}
	})

	t.Run("RejectsNonPositiveTarget", func(t *testing.T) {
		goal := &model.Goal{UserID: "user-1", Title: "t", Type: model.GoalCustom, TargetValue: 0}
		if err := svc.CreateGoal(context.Background(), goal); err == nil {
			t.Error("expected error for zero target")
		}
	})

	t.Run("RejectsNegativeProgress", func(t *testing.T) {
		if err := svc.UpdateProgress(context.Background(), "user-1", "g1", -1); err == nil {
			t.Error("expected error for negative progress value")
		}
	})
}

type fakeGoalsRepo struct {
	goals []*model.Goal
}

func (f *fakeGoalsRepo) CreateGoal(ctx context.Context, goal *model.Goal) error {
	f.goals = append(f.goals, goal)
	return nil
}

func (f *fakeGoalsRepo) GetActiveGoals(ctx context.Context, userID string) ([]*model.Goal, error) {
	return f.goals, nil
}

func (f *fakeGoalsRepo) UpdateGoalProgress(ctx context.Context, goalID, userID string, currentValue float64) error {
	return nil
}

func (f *fakeGoalsRepo) DeactivateGoal(ctx context.Context, goalID, userID string) error {
	return nil
}
