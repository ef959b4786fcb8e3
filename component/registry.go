package component

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/observability"
)

// stopTimeout bounds each component's Stop within the caller's deadline.
const stopTimeout = 10 * time.Second

// Registry starts components in registration order and stops them in
// reverse. Start halts at the first failure, so the started components are
// always a prefix of the registration list.
type Registry struct {
	mu         sync.RWMutex
	components []Component
	index      map[string]int
	started    int
	log        *logger.Logger
}

// NewRegistry returns an empty registry logging through log.
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		index: make(map[string]int),
		log:   log.WithComponent("registry"),
	}
}

// Register appends c. Names must be unique; register dependencies first.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, dup := r.index[name]; dup {
		return fmt.Errorf("component %s already registered", name)
	}
	r.index[name] = len(r.components)
	r.components = append(r.components, c)

	r.log.Debug("Component registered", logger.Fields(logger.FieldComponent, name))
	return nil
}

// StartAll starts every component not yet started, in order.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Info("Starting all components", logger.Fields("count", len(r.components)))
	for _, c := range r.components[r.started:] {
		if err := c.Start(ctx); err != nil {
			r.log.Error("Component start failed", logger.Fields(
				logger.FieldComponent, c.Name(),
				logger.FieldError, err.Error(),
			))
			return fmt.Errorf("failed to start %s: %w", c.Name(), err)
		}
		r.started++

		d := describe(c)
		r.log.Info("Component started", logger.Fields(
			logger.FieldComponent, c.Name(),
			"type", d.Type,
			"details", d.Details,
		))
	}
	return nil
}

// StopAll stops the started components in reverse order. Every one is
// attempted; failures are joined.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, c := range slices.Backward(r.components[:r.started]) {
		if err := stopOne(ctx, c); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", c.Name(), err))
			r.log.Error("Component stop failed", logger.Fields(
				logger.FieldComponent, c.Name(),
				logger.FieldError, err.Error(),
			))
			continue
		}
		r.log.Info("Component stopped", logger.Fields(logger.FieldComponent, c.Name()))
	}
	r.started = 0
	return errors.Join(errs...)
}

func stopOne(ctx context.Context, c Component) error {
	ctx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()
	return c.Stop(ctx)
}

// HealthAll reports every registered component, started or not, in
// registration order.
func (r *Registry) HealthAll(ctx context.Context) []observability.Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]observability.Health, 0, len(r.components))
	for _, c := range r.components {
		results = append(results, c.Health(ctx))
	}
	return results
}

// Get returns the component registered as name, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i, ok := r.index[name]; ok {
		return r.components[i]
	}
	return nil
}

// Descriptions lists every component for the startup summary.
func (r *Registry) Descriptions() []Description {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Description, 0, len(r.components))
	for _, c := range r.components {
		out = append(out, describe(c))
	}
	return out
}

// describe falls back to the component name for undescribed components.
func describe(c Component) Description {
	var d Description
	if dc, ok := c.(Describable); ok {
		d = dc.Describe()
	}
	if d.Name == "" {
		d.Name = c.Name()
	}
	return d
}
