package process

import (
	"io"
	"time"
)

// Default limits applied by Run when a Command leaves them zero.
const (
	DefaultGracePeriod = 5 * time.Second
	DefaultMaxStderr   = 64 << 10
)

// Command describes one tool invocation.
type Command struct {
	// Binary is the executable path or a name resolved via PATH.
	Binary string
	Args   []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env adds key=value pairs on top of the parent environment.
	Env   []string
	Stdin io.Reader
	// GracePeriod is the wait between SIGTERM to the process group and
	// SIGKILL once the context is done.
	GracePeriod time.Duration
	// MaxStderr caps captured stderr. Only the tail is kept: ffmpeg can log
	// for hours of media and the diagnostic lines come last.
	MaxStderr int
}

func (c Command) gracePeriod() time.Duration {
	if c.GracePeriod > 0 {
		return c.GracePeriod
	}
	return DefaultGracePeriod
}

func (c Command) maxStderr() int {
	if c.MaxStderr > 0 {
		return c.MaxStderr
	}
	return DefaultMaxStderr
}
