package bootstrap

import (
	"io"
	"time"

	"github.com/kbukum/scribe/logger"
)

// DefaultGracefulTimeout bounds shutdown when WithGracefulTimeout is not used.
const DefaultGracefulTimeout = 15 * time.Second

type settings struct {
	logger          *logger.Logger
	gracefulTimeout time.Duration
	summaryOut      io.Writer
}

// Option adjusts NewApp.
type Option func(*settings)

// WithLogger replaces the logger built from the Logging config section.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithGracefulTimeout bounds stop hooks plus component shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(s *settings) { s.gracefulTimeout = d }
}

// WithSummaryOutput redirects the startup summary; io.Discard silences it.
func WithSummaryOutput(w io.Writer) Option {
	return func(s *settings) { s.summaryOut = w }
}
