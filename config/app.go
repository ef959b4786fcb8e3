package config

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/kbukum/scribe/media"
	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/pipeline"
	"github.com/kbukum/scribe/provider"
	"github.com/kbukum/scribe/redis"
	"github.com/kbukum/scribe/server"
	"github.com/kbukum/scribe/storage"
	"github.com/kbukum/scribe/transcription"
	tlocal "github.com/kbukum/scribe/transcription/local"
	"github.com/kbukum/scribe/transcription/openai"
	"github.com/kbukum/scribe/validation"
)

// DefaultServiceName names the service in logs, traces and config lookup.
const DefaultServiceName = "scribe"

// Cache backends.
const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

// Config is the process-wide configuration, read once at startup and never
// mutated afterwards.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	// Mode selects the backend: "local" or "remote". Empty picks remote when
	// an OpenAI key is configured, local otherwise.
	Mode string `yaml:"mode" mapstructure:"mode" validate:"oneof=local remote"`

	OpenAI        openai.Config        `yaml:"openai" mapstructure:"openai"`
	Local         tlocal.Config        `yaml:"local" mapstructure:"local"`
	Media         media.Config         `yaml:"media" mapstructure:"media"`
	Pipeline      pipeline.Config      `yaml:"pipeline" mapstructure:"pipeline"`
	Upload        storage.Config       `yaml:"upload" mapstructure:"upload"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Cache         CacheConfig          `yaml:"cache" mapstructure:"cache"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// CacheConfig configures the transcript cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Backend   string        `yaml:"backend" mapstructure:"backend" validate:"omitempty,oneof=redis memory"`
	TTL       time.Duration `yaml:"ttl" mapstructure:"ttl" validate:"gte=0"`
	KeyPrefix string        `yaml:"key_prefix" mapstructure:"key_prefix"`
	Redis     redis.Config  `yaml:"redis" mapstructure:"redis"`

	// MaxEntries bounds the memory backend.
	MaxEntries int `yaml:"max_entries" mapstructure:"max_entries" validate:"gte=0"`
}

// ApplyDefaults fills zero values. Redis is enabled only when it backs an
// enabled cache.
func (c *CacheConfig) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = CacheBackendRedis
	}
	if c.TTL == 0 {
		c.TTL = 7 * 24 * time.Hour
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "scribe:transcript"
	}
	if c.MaxEntries == 0 {
		c.MaxEntries = provider.DefaultMaxEntries
	}
	c.Redis.Enabled = c.Enabled && c.Backend == CacheBackendRedis
	c.Redis.ApplyDefaults()
}

// ApplyDefaults fills zero values across all sections.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.OpenAI.ApplyDefaults()
	if c.Mode == "" {
		c.Mode = string(transcription.ModeLocal)
		if c.OpenAI.APIKey != "" {
			c.Mode = string(transcription.ModeRemote)
		}
	}
	c.Local.ApplyDefaults()
	c.Media.ApplyDefaults()
	c.Pipeline.ApplyDefaults()
	c.Upload.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Cache.ApplyDefaults()
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = c.Name
	}
	if c.Observability.ServiceVersion == "" {
		c.Observability.ServiceVersion = c.Version
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Environment
	}
	c.Observability.ApplyDefaults()
}

// Validate runs the struct-tag rules and every section's own checks. Only the
// backend selected by Mode is validated.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}

	errs := []error{
		c.ServiceConfig.Validate(),
		c.Pipeline.Validate(),
		c.Upload.Validate(),
		c.Server.Validate(),
		c.Cache.Redis.Validate(),
		c.Observability.Validate(),
	}
	switch c.ModeValue() {
	case transcription.ModeRemote:
		errs = append(errs, c.OpenAI.Validate(), c.Media.Validate())
	case transcription.ModeLocal:
		errs = append(errs, c.Local.Validate())
	}
	return stderrors.Join(errs...)
}

// ModeValue returns Mode as a transcription.Mode.
func (c *Config) ModeValue() transcription.Mode {
	return transcription.Mode(c.Mode)
}

// Load resolves, reads, defaults and validates the service configuration.
func Load(opts ...LoaderOption) (*Config, error) {
	var cfg Config
	if err := LoadConfig(DefaultServiceName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
