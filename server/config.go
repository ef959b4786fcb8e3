package server

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/kbukum/scribe/server/middleware"
	"github.com/kbukum/scribe/util"
	"github.com/kbukum/scribe/validation"
)

// Config holds HTTP listener settings.
type Config struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
	// Read and write deadlines cover a 200MB upload plus a multi-segment
	// remote job, so they are far above usual API values.
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout" validate:"gte=0"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout" validate:"gte=0"`
	// MaxBodySize caps the raw request body, e.g. "210MB". It sits a little
	// above the upload ceiling so multipart overhead is not counted.
	MaxBodySize string                `yaml:"max_body_size" mapstructure:"max_body_size"`
	CORS        middleware.CORSConfig `yaml:"cors" mapstructure:"cors"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 5 * time.Minute
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = time.Hour
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = time.Minute
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "210MB"
	}
	c.CORS.ApplyDefaults()
}

// Validate checks ranges and that MaxBodySize parses.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if c.MaxBodySize != "" && c.MaxBodyBytes() <= 0 {
		return fmt.Errorf("server: max_body_size %q is not a size", c.MaxBodySize)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// MaxBodyBytes returns MaxBodySize in bytes; 0 when unset, -1 when it does
// not parse.
func (c *Config) MaxBodyBytes() int64 {
	if c.MaxBodySize == "" {
		return 0
	}
	return util.ParseSize(c.MaxBodySize, -1)
}
