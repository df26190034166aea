package usecase

import (
	"context"
	"log"
	"math"
	"sort"
	"time"

	"github.com/study-droid/studyflow/model"
	"github.com/study-droid/studyflow/utils"

	"golang.org/x/sync/errgroup"
)

// Data sources the aggregator reads from. The Mongo repositories satisfy
// these; tests inject in-memory fakes.
type SessionSource interface {
	SessionsInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.StudySession, error)
}

type TaskSource interface {
	TasksInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.Task, error)
}

type SubjectSource interface {
	GetUserSubjects(ctx context.Context, userID string) ([]*model.Subject, error)
}

type FlashcardSource interface {
	AttemptsInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.FlashcardAttempt, error)
}

type GoalSource interface {
	GetActiveGoals(ctx context.Context, userID string) ([]*model.Goal, error)
}

const (
	// Hours per week assumed when the user has no active weekly_hours goal.
	defaultWeeklyHourGoal = 20.0

	// Seconds assumed per flashcard when the attempt has no recorded time.
	defaultCardSeconds = 30.0

	// Answering two cards per minute scores 100 on the Speed axis.
	fullSpeedCardsPerMinute = 2.0

	consistencyWindowDays = 30
	maxWeeklyHours        = 40.0
	maxStreakDays         = 30.0
)

// Chart palette assigned to subjects by rank, cycling after six.
var subjectPalette = [...]string{
	"#8b5cf6", "#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#ec4899",
}

// AnalyticsService computes dashboard analytics for one user over one
// time range. It holds no state between calls; every snapshot is
// recomputed from scratch against a single reference instant captured
// at the start of the call.
type AnalyticsService struct {
	sessions   SessionSource
	tasks      TaskSource
	subjects   SubjectSource
	flashcards FlashcardSource
	goals      GoalSource

	now func() time.Time
}

func NewAnalyticsService(
	sessions SessionSource,
	tasks TaskSource,
	subjects SubjectSource,
	flashcards FlashcardSource,
	goals GoalSource,
) *AnalyticsService {
	return &AnalyticsService{
		sessions:   sessions,
		tasks:      tasks,
		subjects:   subjects,
		flashcards: flashcards,
		goals:      goals,
		now:        time.Now,
	}
}

// ComputeAnalytics builds a complete snapshot for the user. It never
// fails: a fetch error is logged and degrades that entity to an empty
// collection, so the caller always receives a structurally complete
// snapshot.
func (svc *AnalyticsService) ComputeAnalytics(ctx context.Context, userID string, timeRange model.TimeRange) *model.AnalyticsSnapshot {
	timer := utils.TrackAnalyticsComputation(string(timeRange))
	defer timer.ObserveDuration()

	now := svc.now()
	start := rangeStart(timeRange, now)

	var (
		sessions []*model.StudySession
		tasks    []*model.Task
		subjects []*model.Subject
		attempts []*model.FlashcardAttempt
		goals    []*model.Goal
	)

	// Fan out the five independent fetches and join before aggregating.
	// None of the goroutines returns an error: a failed fetch leaves its
	// slice empty so the aggregation still runs on whatever arrived.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := svc.sessions.SessionsInRange(gctx, userID, start, now)
		if err != nil {
			log.Printf("analytics: fetching sessions for user %s: %v", userID, err)
			utils.TrackError("analytics", "session_fetch_failed")
			return nil
		}
		sessions = res
		return nil
	})
	g.Go(func() error {
		res, err := svc.tasks.TasksInRange(gctx, userID, start, now)
		if err != nil {
			log.Printf("analytics: fetching tasks for user %s: %v", userID, err)
			utils.TrackError("analytics", "task_fetch_failed")
			return nil
		}
		tasks = res
		return nil
	})
	g.Go(func() error {
		res, err := svc.subjects.GetUserSubjects(gctx, userID)
		if err != nil {
			log.Printf("analytics: fetching subjects for user %s: %v", userID, err)
			utils.TrackError("analytics", "subject_fetch_failed")
			return nil
		}
		subjects = res
		return nil
	})
	g.Go(func() error {
		res, err := svc.flashcards.AttemptsInRange(gctx, userID, start, now)
		if err != nil {
			log.Printf("analytics: fetching flashcard attempts for user %s: %v", userID, err)
			utils.TrackError("analytics", "attempt_fetch_failed")
			return nil
		}
		attempts = res
		return nil
	})
	g.Go(func() error {
		res, err := svc.goals.GetActiveGoals(gctx, userID)
		if err != nil {
			log.Printf("analytics: fetching goals for user %s: %v", userID, err)
			utils.TrackError("analytics", "goal_fetch_failed")
			return nil
		}
		goals = res
		return nil
	})
	g.Wait()

	metrics := computeStudyMetrics(sessions, goals, now)

	snapshot := &model.AnalyticsSnapshot{
		StudyMetrics:     metrics,
		StudyHoursData:   computeStudyHoursSeries(sessions, timeRange, now),
		SubjectData:      computeSubjectDistribution(sessions, subjects, now),
		FocusPatternData: computeFocusPattern(sessions, now),
		PerformanceData:  computePerformanceRadar(sessions, attempts, now),
		CompletionRate:   computeCompletionRate(tasks),
	}
	snapshot.ProductivityScore = computeProductivityScore(metrics, snapshot.CompletionRate)

	return snapshot
}

// rangeStart maps a time range onto the beginning of its window:
// start of the current week, month, 3-month block, or year.
func rangeStart(timeRange model.TimeRange, now time.Time) time.Time {
	switch timeRange {
	case model.RangeMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case model.RangeQuarter:
		quarterMonth := time.Month((int(now.Month())-1)/3*3 + 1)
		return time.Date(now.Year(), quarterMonth, 1, 0, 0, 0, 0, now.Location())
	case model.RangeYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return startOfWeek(now)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns midnight of the most recent Sunday.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func sameDay(t, day time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// estimateFocus returns the session's focus score, falling back to an
// estimate from completion state and duration when none was recorded:
// an ideal-length completed session (25-50 min) scores 90, a short one
// 70, a long one 80, and an unfinished session 50.
func estimateFocus(s *model.StudySession, now time.Time) float64 {
	if s.FocusScore != nil {
		return float64(*s.FocusScore)
	}
	if !s.Completed() {
		return 50
	}
	minutes := s.DurationMinutes(now)
	switch {
	case minutes < 25:
		return 70
	case minutes > 50:
		return 80
	default:
		return 90
	}
}

func meanFocus(sessions []*model.StudySession, now time.Time) int {
	if len(sessions) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sessions {
		sum += estimateFocus(s, now)
	}
	return roundInt(sum / float64(len(sessions)))
}

// streakDays walks backward from today counting consecutive calendar
// days that have at least one session. A day without a session, today
// included, ends the walk.
func streakDays(sessions []*model.StudySession, now time.Time) int {
	days := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		days[s.StartTime.Format("2006-01-02")] = true
	}

	streak := 0
	for day := startOfDay(now); days[day.Format("2006-01-02")]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

func computeStudyMetrics(sessions []*model.StudySession, goals []*model.Goal, now time.Time) model.StudyMetrics {
	var totalMinutes float64
	completed := 0
	for _, s := range sessions {
		totalMinutes += s.DurationMinutes(now)
		if s.Completed() {
			completed++
		}
	}

	average := 0
	if completed > 0 {
		// Truncated, not rounded: a 67.5-minute average reports 67.
		average = int(totalMinutes / float64(completed))
	}

	return model.StudyMetrics{
		TotalHours:           round1(totalMinutes / 60),
		SessionsCompleted:    completed,
		AverageSessionLength: average,
		WeeklyGoalProgress:   weeklyGoalProgress(sessions, goals, now),
		FocusScore:           meanFocus(sessions, now),
		StreakDays:           streakDays(sessions, now),
	}
}

// weeklyGoalProgress measures minutes studied since the start of the
// current week against the user's active weekly_hours goal, defaulting
// to 20 hours when no such goal exists. Capped at 100.
func weeklyGoalProgress(sessions []*model.StudySession, goals []*model.Goal, now time.Time) int {
	weekStart := startOfWeek(now)

	var minutes float64
	for _, s := range sessions {
		if !s.StartTime.Before(weekStart) {
			minutes += s.DurationMinutes(now)
		}
	}

	hourGoal := defaultWeeklyHourGoal
	for _, g := range goals {
		if g.Type == model.GoalWeeklyHours && g.TargetValue > 0 {
			hourGoal = g.TargetValue
			break
		}
	}

	progress := minutes / 60 / hourGoal * 100
	return roundInt(math.Min(100, progress))
}

// computeStudyHoursSeries buckets sessions by calendar day: seven
// buckets for the week range, thirty for anything longer.
func computeStudyHoursSeries(sessions []*model.StudySession, timeRange model.TimeRange, now time.Time) []model.StudyHoursPoint {
	days := 30
	labelFormat := "Jan 2"
	if timeRange == model.RangeWeek {
		days = 7
		labelFormat = "Mon"
	}

	today := startOfDay(now)
	series := make([]model.StudyHoursPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)

		var daySessions []*model.StudySession
		for _, s := range sessions {
			if sameDay(s.StartTime, day) {
				daySessions = append(daySessions, s)
			}
		}

		var minutes float64
		completed := 0
		for _, s := range daySessions {
			minutes += s.DurationMinutes(now)
			if s.Completed() {
				completed++
			}
		}

		efficiency := 0
		if len(daySessions) > 0 {
			efficiency = roundInt(float64(completed) / float64(len(daySessions)) * 100)
		}

		series = append(series, model.StudyHoursPoint{
			Label:      day.Format(labelFormat),
			Hours:      round1(minutes / 60),
			Sessions:   len(daySessions),
			Efficiency: efficiency,
			Focus:      meanFocus(daySessions, now),
		})
	}
	return series
}

// computeSubjectDistribution sums session time per subject, resolves
// subject names and orders the slices by hours descending. Sessions
// whose subject no longer resolves are grouped under "Unknown".
func computeSubjectDistribution(sessions []*model.StudySession, subjects []*model.Subject, now time.Time) []model.SubjectSlice {
	names := make(map[string]string, len(subjects))
	for _, sub := range subjects {
		names[sub.SubjectID] = sub.Name
	}

	minutesBySubject := make(map[string]float64)
	for _, s := range sessions {
		name, ok := names[s.SubjectID]
		if !ok || name == "" {
			name = "Unknown"
		}
		minutesBySubject[name] += s.DurationMinutes(now)
	}

	slices := make([]model.SubjectSlice, 0, len(minutesBySubject))
	for name, minutes := range minutesBySubject {
		slices = append(slices, model.SubjectSlice{
			Name:  name,
			Value: round1(minutes / 60),
		})
	}

	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Value != slices[j].Value {
			return slices[i].Value > slices[j].Value
		}
		return slices[i].Name < slices[j].Name
	})

	for i := range slices {
		slices[i].Color = subjectPalette[i%len(subjectPalette)]
	}
	return slices
}

// computeFocusPattern aggregates focus by the hour of day a session
// started. All 24 buckets are always present; empty hours report 0.
func computeFocusPattern(sessions []*model.StudySession, now time.Time) []model.FocusPatternPoint {
	byHour := make([][]*model.StudySession, 24)
	for _, s := range sessions {
		hour := s.StartTime.Hour()
		byHour[hour] = append(byHour[hour], s)
	}

	points := make([]model.FocusPatternPoint, 24)
	for hour := 0; hour < 24; hour++ {
		points[hour] = model.FocusPatternPoint{
			Hour:     hour,
			Focus:    meanFocus(byHour[hour], now),
			Sessions: len(byHour[hour]),
		}
	}
	return points
}

// computePerformanceRadar builds the six-axis radar. Efficiency with no
// sessions is a vacuous 100; Retention with no attempts is 0. Accuracy
// mirrors Retention.
func computePerformanceRadar(sessions []*model.StudySession, attempts []*model.FlashcardAttempt, now time.Time) []model.PerformanceAxis {
	focus := meanFocus(sessions, now)

	activeDays := make(map[string]bool)
	windowStart := startOfDay(now).AddDate(0, 0, -(consistencyWindowDays - 1))
	for _, s := range sessions {
		if !s.StartTime.Before(windowStart) {
			activeDays[s.StartTime.Format("2006-01-02")] = true
		}
	}
	consistency := roundInt(float64(len(activeDays)) / consistencyWindowDays * 100)

	efficiency := 100
	if len(sessions) > 0 {
		completed := 0
		for _, s := range sessions {
			if s.Completed() {
				completed++
			}
		}
		efficiency = roundInt(float64(completed) / float64(len(sessions)) * 100)
	}

	retention := 0
	speed := 0
	if len(attempts) > 0 {
		correct := 0
		var seconds float64
		for _, a := range attempts {
			if a.IsCorrect {
				correct++
			}
			if a.TimeSpent != nil && *a.TimeSpent > 0 {
				seconds += float64(*a.TimeSpent)
			} else {
				seconds += defaultCardSeconds
			}
		}
		retention = roundInt(float64(correct) / float64(len(attempts)) * 100)

		cardsPerMinute := float64(len(attempts)) / (seconds / 60)
		speed = roundInt(math.Min(100, cardsPerMinute/fullSpeedCardsPerMinute*100))
	}

	return []model.PerformanceAxis{
		{Axis: "Focus", Current: focus, Target: 100},
		{Axis: "Consistency", Current: consistency, Target: 100},
		{Axis: "Efficiency", Current: efficiency, Target: 100},
		{Axis: "Retention", Current: retention, Target: 100},
		{Axis: "Speed", Current: speed, Target: 100},
		{Axis: "Accuracy", Current: retention, Target: 100},
	}
}

// computeCompletionRate treats a user with no tasks as fully complete,
// not as a failure.
func computeCompletionRate(tasks []*model.Task) int {
	if len(tasks) == 0 {
		return 100
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return roundInt(float64(completed) / float64(len(tasks)) * 100)
}

// computeProductivityScore blends the headline metrics into one number:
// 30% study volume (40h/week caps at 100), 25% focus, 20% weekly goal
// progress, 15% task completion, 10% streak (30 days caps at 100).
func computeProductivityScore(metrics model.StudyMetrics, completionRate int) int {
	hoursScore := math.Min(100, metrics.TotalHours/maxWeeklyHours*100)
	streakScore := math.Min(100, float64(metrics.StreakDays)/maxStreakDays*100)

	score := hoursScore*0.30 +
		float64(metrics.FocusScore)*0.25 +
		float64(metrics.WeeklyGoalProgress)*0.20 +
		float64(completionRate)*0.15 +
		streakScore*0.10
	return roundInt(score)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
