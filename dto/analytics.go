package dto

type AnalyticsQuery struct {
	Range string `form:"range,default=week" binding:"timerange"`
}
