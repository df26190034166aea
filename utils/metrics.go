package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Analytics Metrics
	AnalyticsComputationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_computation_duration_seconds",
			Help:    "Duration of analytics snapshot computation",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"range"},
	)

	// Study Activity Metrics
	SessionsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "study_sessions_completed_total",
			Help: "Total number of study sessions finished",
		},
	)

	TasksCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tasks_completed_total",
			Help: "Total number of tasks marked complete",
		},
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type", "reason"},
	)
)

// TrackDBOperation tracks database operation duration
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

// TrackAnalyticsComputation times one snapshot computation
func TrackAnalyticsComputation(timeRange string) *prometheus.Timer {
	return prometheus.NewTimer(AnalyticsComputationDuration.WithLabelValues(timeRange))
}

// TrackSessionCompletion records a finished study session
func TrackSessionCompletion(userID string) {
	SessionsCompletedTotal.Inc()
}

// TrackTaskCompletion records a task marked complete
func TrackTaskCompletion(userID string) {
	TasksCompletedTotal.Inc()
}

// TrackError increments the error counter by type and reason
func TrackError(errorType, reason string) {
	ErrorsTotal.WithLabelValues(errorType, reason).Inc()
}
