package provider

import (
	"context"

	"github.com/kbukum/scribe/observability"
)

// Provider is the base interface every backend implements.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Health reports p as up when available. An unavailable backend makes the
// service degraded rather than down: it keeps accepting requests and
// reports the failure per job.
func Health(ctx context.Context, p Provider) observability.Health {
	if p.IsAvailable(ctx) {
		return observability.Health{Name: p.Name(), Status: observability.HealthStatusUp}
	}
	return observability.Health{
		Name:    p.Name(),
		Status:  observability.HealthStatusDegraded,
		Message: "not available",
	}
}
