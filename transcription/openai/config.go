package openai

import (
	"fmt"
	"time"

	"github.com/kbukum/scribe/util"
)

const (
	defaultBaseURL        = "https://api.openai.com/v1"
	defaultModel          = "whisper-1"
	defaultTimeout        = 5 * time.Minute
	defaultMaxAttempts    = 4
	defaultMaxPayloadSize = "25MB"
)

// Config holds configuration for the OpenAI-compatible remote backend.
type Config struct {
	// APIKey is the bearer credential. Required in remote mode.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// BaseURL points at any OpenAI-compatible API root.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
	// Model is the transcription model name.
	Model string `yaml:"model" mapstructure:"model"`
	// Language is an optional ISO-639-1 hint.
	Language string `yaml:"language" mapstructure:"language"`
	// Timeout bounds a single request attempt.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// MaxAttempts bounds retries of connectivity and rate-limit failures.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts" validate:"gte=0,lte=10"`
	// MaxPayloadSize is the per-request file limit, e.g. "25MB".
	MaxPayloadSize string `yaml:"max_payload_size" mapstructure:"max_payload_size"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	c.APIKey = util.SanitizeEnvValue(c.APIKey)
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.MaxPayloadSize == "" {
		c.MaxPayloadSize = defaultMaxPayloadSize
	}
}

// Validate checks the configuration for a usable remote backend.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("openai.api_key is required in remote mode")
	}
	if c.MaxPayloadBytes() <= 0 {
		return fmt.Errorf("openai.max_payload_size is invalid (got: %q)", c.MaxPayloadSize)
	}
	return nil
}

// MaxPayloadBytes returns the parsed payload limit.
func (c *Config) MaxPayloadBytes() int64 {
	return util.ParseSize(c.MaxPayloadSize, 0)
}
