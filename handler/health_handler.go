package handler

import (
	"context"
	"time"

	"github.com/study-droid/studyflow/utils"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports database reachability and host resource usage
func HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := utils.PingMongo(ctx); err != nil {
		utils.ServiceUnavailable(c, "Database unreachable")
		return
	}

	utils.Success(c, gin.H{
		"status":       "ok",
		"database":     "up",
		"cpu_usage":    utils.GetCPUUsage(),
		"memory_usage": utils.GetMemoryUsage(),
	})
}
