package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/kbukum/scribe/provider"
)

// ErrNotStarted is returned by component-backed stores while the component
// is not running.
var ErrNotStarted = stderrors.New("redis: component not started")

var _ provider.ContextStore[any] = (*TypedStore[any])(nil)

// TypedStore keeps JSON-encoded values of type C under "<prefix>:<key>".
type TypedStore[C any] struct {
	client func() *Client
	prefix string
}

// NewTypedStore returns a store on a client the caller owns.
func NewTypedStore[C any](client *Client, keyPrefix string) *TypedStore[C] {
	return &TypedStore[C]{client: func() *Client { return client }, prefix: keyPrefix}
}

// NewComponentStore returns a store that follows comp's lifecycle: it
// fails with ErrNotStarted until comp starts and again after it stops.
func NewComponentStore[C any](comp *Component, keyPrefix string) *TypedStore[C] {
	return &TypedStore[C]{client: comp.Client, prefix: keyPrefix}
}

// with runs fn against the live client and the prefixed key, wrapping
// failures with op and the caller's key.
func (s *TypedStore[C]) with(op, key string, fn func(c *Client, full string) error) error {
	c := s.client()
	if c == nil {
		return ErrNotStarted
	}
	full := key
	if s.prefix != "" {
		full = s.prefix + ":" + key
	}
	if err := fn(c, full); err != nil {
		return fmt.Errorf("redis %s %q: %w", op, key, err)
	}
	return nil
}

// Load returns (nil, nil) for a missing or expired key.
func (s *TypedStore[C]) Load(ctx context.Context, key string) (*C, error) {
	var out *C
	err := s.with("load", key, func(c *Client, full string) error {
		raw, found, err := c.get(ctx, full)
		if err != nil || !found {
			return err
		}
		out = new(C)
		return json.Unmarshal(raw, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Save stores val; a zero ttl never expires.
func (s *TypedStore[C]) Save(ctx context.Context, key string, val *C, ttl time.Duration) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("redis save %q: %w", key, err)
	}
	return s.with("save", key, func(c *Client, full string) error {
		return c.set(ctx, full, data, ttl)
	})
}

func (s *TypedStore[C]) Delete(ctx context.Context, key string) error {
	return s.with("delete", key, func(c *Client, full string) error {
		return c.del(ctx, full)
	})
}
