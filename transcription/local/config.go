package local

import (
	"fmt"
	"time"
)

// Config holds configuration for the local model process.
type Config struct {
	// Binary is the interpreter or executable to run, e.g. "python3".
	Binary string `yaml:"binary" mapstructure:"binary"`
	// Script is passed before the file path when set, e.g. "transcribe_local.py".
	Script string `yaml:"script" mapstructure:"script"`
	// Model is the model size passed as --model. Empty omits the flag.
	Model string `yaml:"model" mapstructure:"model"`
	// Timeout bounds a whole run.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// GracePeriod is how long the process gets between SIGTERM and SIGKILL.
	GracePeriod time.Duration `yaml:"grace_period" mapstructure:"grace_period"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Binary == "" {
		c.Binary = "python3"
	}
	if c.Script == "" {
		c.Script = "transcribe_local.py"
	}
	if c.Model == "" {
		c.Model = "base"
	}
	if c.Timeout == 0 {
		c.Timeout = 2 * time.Hour
	}
	if c.GracePeriod == 0 {
		c.GracePeriod = 5 * time.Second
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Binary == "" {
		return fmt.Errorf("local.binary is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("local.timeout must be non-negative (got: %s)", c.Timeout)
	}
	return nil
}
