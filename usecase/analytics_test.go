package usecase

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/study-droid/studyflow/model"
)

// fakeStore satisfies all five analytics sources with fixed data so the
// aggregation logic can be exercised without a database.
type fakeStore struct {
	sessions []*model.StudySession
	tasks    []*model.Task
	subjects []*model.Subject
	attempts []*model.FlashcardAttempt
	goals    []*model.Goal

	sessionsErr error
	tasksErr    error
	subjectsErr error
	attemptsErr error
	goalsErr    error
}

func (f *fakeStore) SessionsInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.StudySession, error) {
	return f.sessions, f.sessionsErr
}

func (f *fakeStore) TasksInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.Task, error) {
	return f.tasks, f.tasksErr
}

func (f *fakeStore) GetUserSubjects(ctx context.Context, userID string) ([]*model.Subject, error) {
	return f.subjects, f.subjectsErr
}

func (f *fakeStore) AttemptsInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.FlashcardAttempt, error) {
	return f.attempts, f.attemptsErr
}

func (f *fakeStore) GetActiveGoals(ctx context.Context, userID string) ([]*model.Goal, error) {
	return f.goals, f.goalsErr
}

// Friday afternoon; the week started Sunday June 2nd.
var testNow = time.Date(2024, 6, 7, 15, 0, 0, 0, time.UTC)

func newTestService(store *fakeStore) *AnalyticsService {
	svc := NewAnalyticsService(store, store, store, store, store)
	svc.now = func() time.Time { return testNow }
	return svc
}

func intPtr(v int) *int { return &v }

func session(start, end time.Time, subjectID string) *model.StudySession {
	return &model.StudySession{
		SessionID: start.Format(time.RFC3339),
		UserID:    "user-1",
		StartTime: start,
		EndTime:   end,
		SubjectID: subjectID,
	}
}

func TestComputeAnalyticsEndToEnd(t *testing.T) {
	monday := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	tuesday := time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC)

	store := &fakeStore{
		sessions: []*model.StudySession{
			session(monday, monday.Add(45*time.Minute), "subject-a"),
			session(tuesday, tuesday.Add(90*time.Minute), "subject-b"),
		},
		subjects: []*model.Subject{
			{SubjectID: "subject-a", UserID: "user-1", Name: "Math"},
			{SubjectID: "subject-b", UserID: "user-1", Name: "Physics"},
		},
	}
	svc := newTestService(store)

	snapshot := svc.ComputeAnalytics(context.Background(), "user-1", model.RangeWeek)

	t.Run("StudyMetrics", func(t *testing.T) {
		m := snapshot.StudyMetrics
		if math.Abs(m.TotalHours-2.25) > 0.06 {
			t.Errorf("TotalHours = %v, want about 2.25", m.TotalHours)
		}
		if m.SessionsCompleted != 2 {
			t.Errorf("SessionsCompleted = %d, want 2", m.SessionsCompleted)
		}
		if m.AverageSessionLength != 67 {
			t.Errorf("AverageSessionLength = %d, want 67", m.AverageSessionLength)
		}
		if m.StreakDays != 0 {
			t.Errorf("StreakDays = %d, want 0 (nothing studied today)", m.StreakDays)
		}
		// 45 min completed session estimates 90, 90 min one estimates 80
		if m.FocusScore != 85 {
			t.Errorf("FocusScore = %d, want 85", m.FocusScore)
		}
	})

	t.Run("CompletionRateVacuous", func(t *testing.T) {
		if snapshot.CompletionRate != 100 {
			t.Errorf("CompletionRate = %d, want 100 with zero tasks", snapshot.CompletionRate)
		}
	})

	t.Run("SubjectDistribution", func(t *testing.T) {
		if len(snapshot.SubjectData) != 2 {
			t.Fatalf("SubjectData has %d entries, want 2", len(snapshot.SubjectData))
		}
		first, second := snapshot.SubjectData[0], snapshot.SubjectData[1]
		if first.Name != "Physics" || second.Name != "Math" {
			t.Errorf("SubjectData order = [%s, %s], want [Physics, Math]", first.Name, second.Name)
		}
		if math.Abs(first.Value-1.5) > 0.06 {
			t.Errorf("Physics hours = %v, want about 1.5", first.Value)
		}
		if math.Abs(second.Value-0.75) > 0.06 {
			t.Errorf("Math hours = %v, want about 0.75", second.Value)
		}
		if first.Color == "" || second.Color == "" {
			t.Error("subject slices should carry palette colors")
		}
		if first.Color == second.Color {
			t.Error("distinct ranks should get distinct palette colors")
		}
	})

	t.Run("PerformanceRadar", func(t *testing.T) {
		axes := axesByName(t, snapshot)
		if axes["Efficiency"] != 100 {
			t.Errorf("Efficiency = %d, want 100 (all sessions completed)", axes["Efficiency"])
		}
		if axes["Retention"] != 0 || axes["Accuracy"] != 0 {
			t.Errorf("Retention/Accuracy = %d/%d, want 0/0 with no attempts", axes["Retention"], axes["Accuracy"])
		}
	})
}

func TestVacuousDefaults(t *testing.T) {
	svc := newTestService(&fakeStore{})

	snapshot := svc.ComputeAnalytics(context.Background(), "user-1", model.RangeWeek)

	if snapshot.CompletionRate != 100 {
		t.Errorf("CompletionRate = %d, want 100 with no tasks", snapshot.CompletionRate)
	}

	axes := axesByName(t, snapshot)
	if axes["Efficiency"] != 100 {
		t.Errorf("Efficiency = %d, want vacuous 100 with no sessions", axes["Efficiency"])
	}

	// Focus score is NOT vacuously successful: no sessions means 0
	if snapshot.StudyMetrics.FocusScore != 0 {
		t.Errorf("FocusScore = %d, want 0 with no sessions", snapshot.StudyMetrics.FocusScore)
	}

	if snapshot.StudyMetrics.TotalHours != 0 {
		t.Errorf("TotalHours = %v, want 0", snapshot.StudyMetrics.TotalHours)
	}
	if len(snapshot.FocusPatternData) != 24 {
		t.Errorf("FocusPatternData has %d buckets, want 24", len(snapshot.FocusPatternData))
	}
	if len(snapshot.PerformanceData) != 6 {
		t.Errorf("PerformanceData has %d axes, want 6", len(snapshot.PerformanceData))
	}
}

func TestSnapshotIdempotence(t *testing.T) {
	monday := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	store := &fakeStore{
		sessions: []*model.StudySession{
			session(monday, monday.Add(30*time.Minute), "subject-a"),
			session(testNow.Add(-2*time.Hour), time.Time{}, ""), // still open
		},
		tasks: []*model.Task{
			{TaskID: "t1", UserID: "user-1", Title: "read", Completed: true},
		},
	}
	svc := newTestService(store)

	first := svc.ComputeAnalytics(context.Background(), "user-1", model.RangeWeek)
	second := svc.ComputeAnalytics(context.Background(), "user-1", model.RangeWeek)

	if !reflect.DeepEqual(first, second) {
		t.Error("two computations over identical data should produce identical snapshots")
	}
}

func TestStreakCountsBackFromToday(t *testing.T) {
	day := func(offset int, dur time.Duration) *model.StudySession {
		start := time.Date(2024, 6, 7+offset, 10, 0, 0, 0, time.UTC)
		return session(start, start.Add(dur), "")
	}

	t.Run("GapEndsStreak", func(t *testing.T) {
		// Sessions today, yesterday, and three days ago; nothing two days ago
		sessions := []*model.StudySession{
			day(0, 30*time.Minute),
			day(-1, 30*time.Minute),
			day(-3, 30*time.Minute),
		}
		if got := streakDays(sessions, testNow); got != 2 {
			t.Errorf("streakDays = %d, want 2", got)
		}
	})

	t.Run("NoSessionTodayMeansZero", func(t *testing.T) {
		sessions := []*model.StudySession{
			day(-1, 30*time.Minute),
			day(-2, 30*time.Minute),
		}
		if got := streakDays(sessions, testNow); got != 0 {
			t.Errorf("streakDays = %d, want 0", got)
		}
	})
}

func TestBucketCounts(t *testing.T) {
	svc := newTestService(&fakeStore{})

	tests := []struct {
		timeRange model.TimeRange
		want      int
	}{
		{model.RangeWeek, 7},
		{model.RangeMonth, 30},
		{model.RangeQuarter, 30},
		{model.RangeYear, 30},
	}

	for _, tc := range tests {
		snapshot := svc.ComputeAnalytics(context.Background(), "user-1", tc.timeRange)
		if len(snapshot.StudyHoursData) != tc.want {
			t.Errorf("range %s: %d buckets, want %d", tc.timeRange, len(snapshot.StudyHoursData), tc.want)
		}
	}
}

func TestSubjectHoursSumMatchesTotal(t *testing.T) {
	base := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	store := &fakeStore{
		sessions: []*model.StudySession{
			session(base, base.Add(50*time.Minute), "subject-a"),
			session(base.Add(2*time.Hour), base.Add(3*time.Hour), "subject-a"),
			session(base.Add(26*time.Hour), base.Add(27*time.Hour), "subject-b"),
			session(base.Add(50*time.Hour), base.Add(50*time.Hour+25*time.Minute), ""),
		},
		subjects: []*model.Subject{
			{SubjectID: "subject-a", UserID: "user-1", Name: "Biology"},
			{SubjectID: "subject-b", UserID: "user-1", Name: "History"},
		},
	}
	svc := newTestService(store)

	snapshot := svc.ComputeAnalytics(context.Background(), "user-1", model.RangeWeek)

	var sum float64
	for _, slice := range snapshot.SubjectData {
		sum += slice.Value
	}

	tolerance := 0.1 * float64(len(snapshot.SubjectData)+1)
	if math.Abs(sum-snapshot.StudyMetrics.TotalHours) > tolerance {
		t.Errorf("subject hours sum %v differs from TotalHours %v beyond rounding tolerance", sum, snapshot.StudyMetrics.TotalHours)
	}
}

func TestFetchFailuresDegrade(t *testing.T) {
	monday := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	t.Run("FlashcardFetchFailure", func(t *testing.T) {
		store := &fakeStore{
			sessions: []*model.StudySession{
				session(monday, monday.Add(30*time.Minute), ""),
			},
			attemptsErr: errors.New("query timed out"),
		}
		svc := newTestService(store)

		snapshot := svc.ComputeAnalytics(context.Background(), "user-1", model.RangeWeek)

		axes := axesByName(t, snapshot)
		if axes["Retention"] != 0 || axes["Accuracy"] != 0 || axes["Speed"] != 0 {
			t.Errorf("flashcard axes = %d/%d/%d, want all 0 after fetch failure",
				axes["Retention"], axes["Accuracy"], axes["Speed"])
		}
		if snapshot.StudyMetrics.SessionsCompleted != 1 {
			t.Error("session metrics should survive a flashcard fetch failure")
		}
	})

	t.Run("EverythingFails", func(t *testing.T) {
		boom := errors.New("connection refused")
		store := &fakeStore{
			sessionsErr: boom,
			tasksErr:    boom,
			subjectsErr: boom,
			attemptsErr: boom,
			goalsErr:    boom,
		}
		svc := newTestService(store)

		snapshot := svc.ComputeAnalytics(context.Background(), "user-1", model.RangeMonth)
		if snapshot == nil {
			t.Fatal("snapshot must never be nil")
		}
		if len(snapshot.StudyHoursData) != 30 || len(snapshot.FocusPatternData) != 24 || len(snapshot.PerformanceData) != 6 {
			t.Error("snapshot must stay structurally complete when every fetch fails")
		}
	})
}

func TestEstimateFocusFallback(t *testing.T) {
	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		session *model.StudySession
		want    float64
	}{
		{"ExplicitScoreWins", &model.StudySession{StartTime: start, EndTime: start.Add(10 * time.Minute), FocusScore: intPtr(42)}, 42},
		{"IdealLength", session(start, start.Add(30*time.Minute), ""), 90},
		{"TooShort", session(start, start.Add(10*time.Minute), ""), 70},
		{"TooLong", session(start, start.Add(2*time.Hour), ""), 80},
		{"StillOpen", session(start, time.Time{}, ""), 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := estimateFocus(tc.session, testNow); got != tc.want {
				t.Errorf("estimateFocus = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRangeStart(t *testing.T) {
	tests := []struct {
		timeRange model.TimeRange
		want      time.Time
	}{
		{model.RangeWeek, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)},
		{model.RangeMonth, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{model.RangeQuarter, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		{model.RangeYear, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		if got := rangeStart(tc.timeRange, testNow); !got.Equal(tc.want) {
			t.Errorf("rangeStart(%s) = %v, want %v", tc.timeRange, got, tc.want)
		}
	}
}

func TestWeeklyGoalProgress(t *testing.T) {
	// Five hours studied since Sunday
	start := time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC)
	sessions := []*model.StudySession{
		session(start, start.Add(5*time.Hour), ""),
	}

	t.Run("DefaultGoal", func(t *testing.T) {
		if got := weeklyGoalProgress(sessions, nil, testNow); got != 25 {
			t.Errorf("progress = %d, want 25 (5h of default 20h)", got)
		}
	})

	t.Run("ActiveGoalOverrides", func(t *testing.T) {
		goals := []*model.Goal{
			{GoalID: "g1", Type: model.GoalWeeklyHours, TargetValue: 10, IsActive: true},
		}
		if got := weeklyGoalProgress(sessions, goals, testNow); got != 50 {
			t.Errorf("progress = %d, want 50 (5h of 10h goal)", got)
		}
	})

	t.Run("CappedAt100", func(t *testing.T) {
		goals := []*model.Goal{
			{GoalID: "g1", Type: model.GoalWeeklyHours, TargetValue: 2, IsActive: true},
		}
		if got := weeklyGoalProgress(sessions, goals, testNow); got != 100 {
			t.Errorf("progress = %d, want capped 100", got)
		}
	})
}

func TestFlashcardAxes(t *testing.T) {
	attempt := func(correct bool, seconds *int) *model.FlashcardAttempt {
		return &model.FlashcardAttempt{
			UserID:      "user-1",
			FlashcardID: "card",
			IsCorrect:   correct,
			TimeSpent:   seconds,
			AttemptedAt: testNow.Add(-time.Hour),
		}
	}

	t.Run("RetentionAndAccuracyMatch", func(t *testing.T) {
		attempts := []*model.FlashcardAttempt{
			attempt(true, intPtr(20)),
			attempt(true, intPtr(40)),
			attempt(false, intPtr(30)),
		}
		axes := performanceByName(computePerformanceRadar(nil, attempts, testNow))
		if axes["Retention"] != 67 {
			t.Errorf("Retention = %d, want 67", axes["Retention"])
		}
		if axes["Accuracy"] != axes["Retention"] {
			t.Error("Accuracy must mirror Retention")
		}
	})

	t.Run("SpeedAtTwoCardsPerMinute", func(t *testing.T) {
		attempts := []*model.FlashcardAttempt{
			attempt(true, intPtr(30)),
			attempt(false, intPtr(30)),
		}
		axes := performanceByName(computePerformanceRadar(nil, attempts, testNow))
		if axes["Speed"] != 100 {
			t.Errorf("Speed = %d, want 100 at two cards per minute", axes["Speed"])
		}
	})

	t.Run("MissingTimeSpentDefaults", func(t *testing.T) {
		// One card, no recorded time: 30s assumed, so 2 cards/min again
		attempts := []*model.FlashcardAttempt{attempt(true, nil)}
		axes := performanceByName(computePerformanceRadar(nil, attempts, testNow))
		if axes["Speed"] != 100 {
			t.Errorf("Speed = %d, want 100 with defaulted card time", axes["Speed"])
		}
	})
}

func TestFocusPatternBuckets(t *testing.T) {
	nine := time.Date(2024, 6, 5, 9, 15, 0, 0, time.UTC)
	fourteen := time.Date(2024, 6, 5, 14, 0, 0, 0, time.UTC)
	sessions := []*model.StudySession{
		session(nine, nine.Add(30*time.Minute), ""),
		session(nine.Add(5*time.Minute), nine.Add(40*time.Minute), ""),
		session(fourteen, fourteen.Add(time.Hour), ""),
	}

	pattern := computeFocusPattern(sessions, testNow)
	if len(pattern) != 24 {
		t.Fatalf("pattern has %d buckets, want 24", len(pattern))
	}
	if pattern[9].Sessions != 2 {
		t.Errorf("hour 9 has %d sessions, want 2", pattern[9].Sessions)
	}
	if pattern[14].Sessions != 1 {
		t.Errorf("hour 14 has %d sessions, want 1", pattern[14].Sessions)
	}
	if pattern[3].Focus != 0 || pattern[3].Sessions != 0 {
		t.Error("empty hours must report zero focus and zero sessions")
	}
}

func TestProductivityScore(t *testing.T) {
	t.Run("PerfectWeek", func(t *testing.T) {
		metrics := model.StudyMetrics{
			TotalHours:         40,
			FocusScore:         100,
			WeeklyGoalProgress: 100,
			StreakDays:         30,
		}
		if got := computeProductivityScore(metrics, 100); got != 100 {
			t.Errorf("score = %d, want 100", got)
		}
	})

	t.Run("WeightsApply", func(t *testing.T) {
		metrics := model.StudyMetrics{
			TotalHours:         20, // half of the 40h cap -> 50
			FocusScore:         80,
			WeeklyGoalProgress: 50,
			StreakDays:         15, // half of the 30 day cap -> 50
		}
		// 50*0.30 + 80*0.25 + 50*0.20 + 60*0.15 + 50*0.10 = 59
		if got := computeProductivityScore(metrics, 60); got != 59 {
			t.Errorf("score = %d, want 59", got)
		}
	})
}

func axesByName(t *testing.T, snapshot *model.AnalyticsSnapshot) map[string]int {
	t.Helper()
	if len(snapshot.PerformanceData) != 6 {
		t.Fatalf("PerformanceData has %d axes, want 6", len(snapshot.PerformanceData))
	}
	return performanceByName(snapshot.PerformanceData)
}

func performanceByName(axes []model.PerformanceAxis) map[string]int {
	byName := make(map[string]int, len(axes))
	for _, axis := range axes {
		byName[axis.Axis] = axis.Current
	}
	return byName
}
