package media

import (
	"fmt"
	"time"
)

// Config holds media tool configuration.
type Config struct {
	// FFmpegPath is the ffmpeg executable (resolved via PATH).
	FFmpegPath string `yaml:"ffmpeg_path" mapstructure:"ffmpeg_path"`
	// FFprobePath is the ffprobe executable (resolved via PATH).
	FFprobePath string `yaml:"ffprobe_path" mapstructure:"ffprobe_path"`
	// SampleRate is the output sample rate in Hz.
	SampleRate int `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=8000"`
	// Bitrate is the fixed output bitrate, e.g. "64k".
	Bitrate string `yaml:"bitrate" mapstructure:"bitrate"`
	// Timeout bounds a single tool invocation. Zero means no limit.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.FFmpegPath == "" {
		c.FFmpegPath = "ffmpeg"
	}
	if c.FFprobePath == "" {
		c.FFprobePath = "ffprobe"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 16000
	}
	if c.Bitrate == "" {
		c.Bitrate = "64k"
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Minute
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.FFmpegPath == "" || c.FFprobePath == "" {
		return fmt.Errorf("media: ffmpeg_path and ffprobe_path are required")
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("media: sample_rate must be positive (got: %d)", c.SampleRate)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("media: timeout must be non-negative (got: %s)", c.Timeout)
	}
	return nil
}
