package server

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/kbukum/scribe/component"
	"github.com/kbukum/scribe/observability"
)

const componentName = "http-server"

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component wraps Server for the component registry.
type Component struct {
	server  *Server
	running atomic.Bool
}

// NewComponent returns a registry component backed by s.
func NewComponent(s *Server) *Component {
	return &Component{server: s}
}

// Name returns the component name used for registration.
func (sc *Component) Name() string { return componentName }

// Start starts the underlying HTTP server.
func (sc *Component) Start(ctx context.Context) error {
	if err := sc.server.Start(ctx); err != nil {
		return err
	}
	sc.running.Store(true)
	return nil
}

// Stop gracefully shuts down the underlying HTTP server.
func (sc *Component) Stop(ctx context.Context) error {
	sc.running.Store(false)
	return sc.server.Stop(ctx)
}

// Health reports up while the server is listening.
func (sc *Component) Health(_ context.Context) observability.Health {
	if sc.running.Load() {
		return observability.Health{
			Name:    componentName,
			Status:  observability.HealthStatusUp,
			Details: map[string]string{"addr": sc.server.Addr()},
		}
	}
	return observability.Health{
		Name:    componentName,
		Status:  observability.HealthStatusDown,
		Message: "HTTP server not running",
	}
}

// Describe returns summary info for the startup log.
func (sc *Component) Describe() component.Description {
	cfg := sc.server.config
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: fmt.Sprintf("%s routes=%d max_body=%s", cfg.Addr(), len(sc.server.Routes()), cfg.MaxBodySize),
		Port:    cfg.Port,
	}
}
