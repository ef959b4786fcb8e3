package storage

import (
	"errors"
	"fmt"

	"github.com/kbukum/scribe/util"
)

// Default upload settings.
const (
	DefaultDir     = "uploads"
	DefaultMaxSize = "200MB"
)

// DefaultAllowedExtensions are the accepted audio and video containers.
var DefaultAllowedExtensions = []string{
	"mp4", "mkv", "mov", "avi", "webm",
	"mp3", "wav", "m4a", "ogg", "flac",
}

// Config holds upload intake configuration.
type Config struct {
	// Dir is the directory uploads are written to.
	Dir string `mapstructure:"dir" json:"dir"`

	// MaxSize is the largest accepted upload (e.g. "200MB").
	MaxSize string `mapstructure:"max_size" json:"max_size"`

	// AllowedExtensions lists accepted file extensions without the dot.
	AllowedExtensions []string `mapstructure:"allowed_extensions" json:"allowed_extensions"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Dir == "" {
		c.Dir = DefaultDir
	}
	if c.MaxSize == "" {
		c.MaxSize = DefaultMaxSize
	}
	if len(c.AllowedExtensions) == 0 {
		c.AllowedExtensions = append([]string(nil), DefaultAllowedExtensions...)
	}
	c.AllowedExtensions = util.NormalizeExtensions(c.AllowedExtensions)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []error
	if c.Dir == "" {
		errs = append(errs, errors.New("upload: dir is required"))
	}
	if c.MaxBytes() <= 0 {
		errs = append(errs, fmt.Errorf("upload: invalid max_size %q", c.MaxSize))
	}
	if len(c.AllowedExtensions) == 0 {
		errs = append(errs, errors.New("upload: allowed_extensions must not be empty"))
	}
	return errors.Join(errs...)
}

// MaxBytes returns MaxSize in bytes, or -1 when it cannot be parsed.
func (c *Config) MaxBytes() int64 {
	return util.ParseSize(c.MaxSize, -1)
}
