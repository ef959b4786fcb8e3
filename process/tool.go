package process

import (
	"context"
	"os/exec"
	"time"

	"github.com/kbukum/scribe/provider"
)

var (
	_ Runner            = (*Tool)(nil)
	_ provider.Provider = (*Tool)(nil)
)

// Runner executes a command. Media tools and the local backend depend on
// this interface so tests can substitute canned results.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, cmd Command) (*Result, error)

func (f RunnerFunc) Run(ctx context.Context, cmd Command) (*Result, error) {
	return f(ctx, cmd)
}

// Tool is a Runner bound to one executable, with a per-run timeout and
// grace period applied to every Command that leaves them unset.
type Tool struct {
	name        string
	binary      string
	timeout     time.Duration
	gracePeriod time.Duration
}

// ToolOption configures a Tool.
type ToolOption func(*Tool)

// WithTimeout bounds each run; zero leaves only the caller's context.
func WithTimeout(d time.Duration) ToolOption {
	return func(t *Tool) { t.timeout = d }
}

// WithGracePeriod sets the SIGTERM to SIGKILL wait.
func WithGracePeriod(d time.Duration) ToolOption {
	return func(t *Tool) { t.gracePeriod = d }
}

// NewTool returns a Tool named name that runs binary.
func NewTool(name, binary string, opts ...ToolOption) *Tool {
	t := &Tool{name: name, binary: binary}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run fills the binary and grace period from t and applies its timeout.
func (t *Tool) Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Binary == "" {
		cmd.Binary = t.binary
	}
	if cmd.GracePeriod == 0 {
		cmd.GracePeriod = t.gracePeriod
	}
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	return Run(ctx, cmd)
}

func (t *Tool) Name() string { return t.name }

// IsAvailable reports whether the binary resolves on PATH.
func (t *Tool) IsAvailable(context.Context) bool {
	if t.binary == "" {
		return false
	}
	_, err := exec.LookPath(t.binary)
	return err == nil
}
