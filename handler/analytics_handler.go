package handler

import (
	"context"

	"github.com/study-droid/studyflow/dto"
	"github.com/study-droid/studyflow/model"
	"github.com/study-droid/studyflow/utils"

	"github.com/gin-gonic/gin"
)

// AnalyticsProvider computes a dashboard snapshot. It never fails;
// missing data shows up as zeroed metrics, not as an error response.
type AnalyticsProvider interface {
	ComputeAnalytics(ctx context.Context, userID string, timeRange model.TimeRange) *model.AnalyticsSnapshot
}

type AnalyticsHandler struct {
	service AnalyticsProvider
}

func NewAnalyticsHandler(service AnalyticsProvider) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var query dto.AnalyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, "Invalid time range, expected week, month, quarter or year")
		return
	}

	timeRange, err := model.ParseTimeRange(query.Range)
	if err != nil {
		utils.BadRequest(c, "Invalid time range, expected week, month, quarter or year")
		return
	}

	snapshot := h.service.ComputeAnalytics(c.Request.Context(), userID.(string), timeRange)

	utils.Success(c, gin.H{
		"analytics": snapshot,
	})
}
