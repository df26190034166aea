package model

import "fmt"

type TimeRange string

const (
	RangeWeek    TimeRange = "week"
	RangeMonth   TimeRange = "month"
	RangeQuarter TimeRange = "quarter"
	RangeYear    TimeRange = "year"
)

func ParseTimeRange(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case RangeWeek, RangeMonth, RangeQuarter, RangeYear:
		return TimeRange(s), nil
	}
	return "", fmt.Errorf("invalid time range %q", s)
}

// StudyMetrics is the headline block of the dashboard.
type StudyMetrics struct {
	TotalHours           float64 `json:"totalHours"`
	SessionsCompleted    int     `json:"sessionsCompleted"`
	AverageSessionLength int     `json:"averageSessionLength"` // minutes
	WeeklyGoalProgress   int     `json:"weeklyGoalProgress"`   // percent, capped at 100
	FocusScore           int     `json:"focusScore"`
	StreakDays           int     `json:"streakDays"`
}

// StudyHoursPoint is one bucket of the study-hours chart: a calendar day.
type StudyHoursPoint struct {
	Label      string  `json:"label"`
	Hours      float64 `json:"hours"`
	Sessions   int     `json:"sessions"`
	Efficiency int     `json:"efficiency"` // percent of sessions that day completed
	Focus      int     `json:"focus"`
}

// SubjectSlice is one entry of the per-subject time distribution.
type SubjectSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"` // hours
	Color string  `json:"color"`
}

// FocusPatternPoint aggregates focus by hour of day (0-23).
type FocusPatternPoint struct {
	Hour     int `json:"hour"`
	Focus    int `json:"focus"`
	Sessions int `json:"sessions"`
}

// PerformanceAxis is one spoke of the six-axis performance radar.
type PerformanceAxis struct {
	Axis    string `json:"axis"`
	Current int    `json:"current"`
	Target  int    `json:"target"`
}

// AnalyticsSnapshot bundles everything the dashboard needs for one user
// over one time range. It is built fresh on every call and never cached.
type AnalyticsSnapshot struct {
	StudyMetrics      StudyMetrics        `json:"studyMetrics"`
	StudyHoursData    []StudyHoursPoint   `json:"studyHoursData"`
	SubjectData       []SubjectSlice      `json:"subjectData"`
	FocusPatternData  []FocusPatternPoint `json:"focusPatternData"`
	PerformanceData   []PerformanceAxis   `json:"performanceData"`
	CompletionRate    int                 `json:"completionRate"`
	ProductivityScore int                 `json:"productivityScore"`
}
