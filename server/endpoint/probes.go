package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/version"
)

var started = time.Now()

// Readiness answers 503 only when a component is down; a degraded cache
// still serves transcriptions. Failing components are named in "down".
func Readiness(info ServiceInfo, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := collect(c.Request.Context(), info, checker)
		body := gin.H{
			"status":    "ready",
			"service":   info.Name,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		if sh.Status != observability.HealthStatusDown {
			c.JSON(http.StatusOK, body)
			return
		}

		var down []string
		for _, h := range sh.Components {
			if h.Status == observability.HealthStatusDown {
				down = append(down, h.Name)
			}
		}
		body["status"] = "not_ready"
		body["down"] = down
		c.JSON(http.StatusServiceUnavailable, body)
	}
}

// Info reports the build and the active transcription mode.
func Info(info ServiceInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		build := version.GetVersionInfo()
		c.JSON(http.StatusOK, gin.H{
			"service": info.Name,
			"mode":    info.Mode,
			"version": build.Short(),
			"build":   build,
			"uptime":  time.Since(started).Round(time.Second).String(),
		})
	}
}
