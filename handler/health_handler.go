package handler

import (
	"time"

	"noteshare/utils"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// HealthHandler reports process uptime and host resource usage.
func HealthHandler(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(startTime).Seconds()),
		"cpu_percent":    utils.GetCPUUsage(),
		"memory_percent": utils.GetMemoryUsage(),
	})
}
