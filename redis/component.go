package redis

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/kbukum/scribe/component"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/observability"
)

// Component wraps Client and implements component.Component for lifecycle management.
type Component struct {
	client   atomic.Pointer[Client]
	cfg      Config
	optional bool
	log      *logger.Logger
}

// ComponentOption configures a Component.
type ComponentOption func(*Component)

// Optional lets Start succeed when the first ping fails. The client keeps
// reconnecting on use and Health reports degraded until Redis answers.
func Optional() ComponentOption {
	return func(c *Component) { c.optional = true }
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a Redis component for use with the component registry.
func NewComponent(cfg Config, log *logger.Logger, opts ...ComponentOption) *Component {
	cfg.ApplyDefaults()
	c := &Component{
		cfg: cfg,
		log: log.WithComponent("redis"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Client returns the underlying *Client, or nil if not started.
func (c *Component) Client() *Client {
	return c.client.Load()
}

// Name returns the component name.
func (c *Component) Name() string { return "redis" }

// Start initializes the Redis client and verifies connectivity.
func (c *Component) Start(ctx context.Context) error {
	client, err := New(c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("redis start: %w", err)
	}

	if err := client.Ping(ctx); err != nil {
		if !c.optional {
			_ = client.Close()
			return fmt.Errorf("redis start ping: %w", err)
		}
		c.log.Warn("Redis unreachable at startup, continuing degraded", logger.Fields(
			"addr", c.cfg.Addr,
			logger.FieldError, err.Error(),
		))
	}

	c.client.Store(client)
	return nil
}

// Stop gracefully closes the Redis connection.
func (c *Component) Stop(_ context.Context) error {
	client := c.client.Swap(nil)
	if client == nil {
		return nil
	}
	return client.Close()
}

// Health pings Redis. It never reports down: Redis only backs the
// transcript cache, so an outage costs cache hits, not transcriptions.
func (c *Component) Health(ctx context.Context) observability.Health {
	h := observability.Health{Name: c.Name(), Status: observability.HealthStatusDegraded}
	client := c.Client()
	if client == nil {
		h.Message = "redis not initialized"
		return h
	}
	if err := client.Ping(ctx); err != nil {
		h.Message = "ping failed: " + err.Error()
		return h
	}
	h.Status = observability.HealthStatusUp
	h.Details = client.poolStats()
	return h
}

// Describe returns infrastructure summary info for the startup log.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Redis",
		Type:    "redis",
		Details: fmt.Sprintf("%s db=%d pool=%d", c.cfg.Addr, c.cfg.DB, c.cfg.PoolSize),
	}
}
