package pipeline

import (
	"fmt"
	"os"

	"github.com/kbukum/scribe/segment"
)

// Config holds pipeline settings.
type Config struct {
	// SegmentSeconds is the planned length of each remote segment.
	SegmentSeconds float64 `yaml:"segment_seconds" mapstructure:"segment_seconds" validate:"gte=0"`
	// TempDir is where audio and segment renders are written.
	TempDir string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.SegmentSeconds == 0 {
		c.SegmentSeconds = segment.DefaultLength
	}
	if c.TempDir == "" {
		c.TempDir = os.TempDir()
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.SegmentSeconds <= 0 {
		return fmt.Errorf("pipeline.segment_seconds must be positive (got: %v)", c.SegmentSeconds)
	}
	info, err := os.Stat(c.TempDir)
	if err != nil {
		return fmt.Errorf("pipeline.temp_dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("pipeline.temp_dir %q is not a directory", c.TempDir)
	}
	return nil
}
