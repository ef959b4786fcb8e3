package redis

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/provider"
)

var _ provider.Provider = (*Client)(nil)

// Client is a pooled go-redis connection. Connections are dialed lazily.
type Client struct {
	rdb    *goredis.Client
	log    *logger.Logger
	closed atomic.Bool
}

// New validates cfg and builds a client. It does not contact the server.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("redis config: %w", err)
	}
	if !cfg.Enabled {
		return nil, stderrors.New("redis is disabled")
	}

	c := &Client{
		rdb: goredis.NewClient(&goredis.Options{
			Addr:         cfg.Addr,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     cfg.PoolSize,
			MinIdleConns: cfg.MinIdleConns,
			MaxRetries:   cfg.MaxRetries,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		}),
		log: log,
	}
	log.Debug("Redis client created", logger.Fields("addr", cfg.Addr, "db", cfg.DB, "pool_size", cfg.PoolSize))
	return c, nil
}

func (c *Client) Name() string { return "redis" }

// IsAvailable reports whether the client is open and the server answers.
func (c *Client) IsAvailable(ctx context.Context) bool {
	return !c.closed.Load() && c.Ping(ctx) == nil
}

// Ping round-trips a PING.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// get returns the value at key; found is false for a missing key.
func (c *Client) get(ctx context.Context, key string) (val []byte, found bool, err error) {
	val, err = c.rdb.Get(ctx, key).Bytes()
	switch {
	case stderrors.Is(err, goredis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return val, true, nil
}

// set stores val at key; ttl 0 keeps it forever.
func (c *Client) set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, val, ttl).Err()
}

func (c *Client) del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

// poolStats renders connection pool counters for health details.
func (c *Client) poolStats() map[string]string {
	s := c.rdb.PoolStats()
	return map[string]string{
		"hits":        strconv.FormatUint(uint64(s.Hits), 10),
		"misses":      strconv.FormatUint(uint64(s.Misses), 10),
		"timeouts":    strconv.FormatUint(uint64(s.Timeouts), 10),
		"total_conns": strconv.FormatUint(uint64(s.TotalConns), 10),
		"idle_conns":  strconv.FormatUint(uint64(s.IdleConns), 10),
	}
}

// Close releases the pool. Later calls are no-ops.
func (c *Client) Close() error {
	if c == nil || !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.log.Info("Closing Redis connection")
	return c.rdb.Close()
}
