package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/scribe/observability"
)

// ServiceInfo identifies the running service in system endpoints.
type ServiceInfo struct {
	Name    string
	Version string
	// Mode is the display label of the active transcription backend.
	Mode string
}

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []observability.Health

// Health returns a handler that reports service health including component
// statuses. A down component turns the response into a 503.
func Health(info ServiceInfo, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := collect(c.Request.Context(), info, checker)

		httpStatus := http.StatusOK
		if sh.Status == observability.HealthStatusDown {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":     sh.Status,
			"service":    sh.Service,
			"version":    sh.Version,
			"mode":       sh.Mode,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": sh.Components,
		})
	}
}

func collect(ctx context.Context, info ServiceInfo, checker HealthChecker) *observability.ServiceHealth {
	var results []observability.Health
	if checker != nil {
		results = checker(ctx)
	}
	return observability.Aggregate(info.Name, info.Version, info.Mode, results)
}
