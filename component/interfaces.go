package component

import (
	"context"

	"github.com/kbukum/scribe/observability"
)

// Component is a lifecycle-managed piece of infrastructure: the HTTP
// server, the transcript cache.
type Component interface {
	// Name returns the unique name of the component for registration.
	Name() string

	// Start initializes and starts the component.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the component and releases resources.
	Stop(ctx context.Context) error

	// Health returns the current health status of the component.
	Health(ctx context.Context) observability.Health
}

// Description holds summary information for the startup log.
type Description struct {
	// Name is the human-readable display name. If empty, Name() is used.
	Name string
	// Type categorizes the component: "server", "redis", ...
	Type string
	// Details is a one-liner such as "localhost:6379 db=0 pool=10".
	Details string
	// Port is the primary port, 0 if not applicable.
	Port int
}

// Describable is optionally implemented by Components to report what they
// are and how they are configured at startup.
type Describable interface {
	Describe() Description
}
