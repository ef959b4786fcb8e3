// Package local implements the local transcription backend: a model
// process that receives the file path as an argument, prints {"text": ...}
// on stdout on success, and prints {"error": ...} on stderr with a non-zero
// exit status on failure.
package local

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/process"
	"github.com/kbukum/scribe/provider"
	"github.com/kbukum/scribe/transcription"
)

// ProviderName is the label shown by the mode query.
const ProviderName = "local"

var _ transcription.Local = (*Provider)(nil)

// Provider implements transcription.Local by running a subprocess.
type Provider struct {
	cfg    Config
	runner process.Runner
	log    *logger.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithRunner replaces the subprocess runner.
func WithRunner(r process.Runner) Option {
	return func(p *Provider) { p.runner = r }
}

// NewProvider creates a local backend from configuration.
func NewProvider(cfg Config, log *logger.Logger, opts ...Option) *Provider {
	cfg.ApplyDefaults()
	p := &Provider{
		cfg: cfg,
		runner: process.NewTool(ProviderName, cfg.Binary,
			process.WithTimeout(cfg.Timeout),
			process.WithGracePeriod(cfg.GracePeriod),
		),
		log: log.WithComponent("local"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the configured binary can be resolved.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	if pp, ok := p.runner.(provider.Provider); ok {
		return pp.IsAvailable(ctx)
	}
	return true
}

type output struct {
	Text  *string `json:"text"`
	Error string  `json:"error"`
}

// TranscribeWhole runs the model process once on the file at path.
func (p *Provider) TranscribeWhole(ctx context.Context, path string) (string, error) {
	start := time.Now()
	res, err := p.runner.Run(ctx, process.Command{
		Binary: p.cfg.Binary,
		Args:   p.args(path),
	})
	if err != nil {
		diag := diagnostic(res)
		p.log.Warn("local model failed", logger.Fields(
			logger.FieldError, err.Error(),
			"diagnostic", diag,
		))
		if diag == "" {
			diag = err.Error()
		}
		return "", errors.LocalBackendFailed(diag).WithCause(err)
	}

	var out output
	if jerr := json.Unmarshal(bytes.TrimSpace(res.Stdout), &out); jerr != nil || out.Text == nil {
		p.log.Warn("local model returned unreadable output", logger.Fields(
			"stdout", truncate(string(res.Stdout), 200),
		))
		return "", errors.LocalBackendFailed("local model returned unreadable output").WithCause(jerr)
	}

	p.log.Debug("local transcription completed", logger.DurationFields("transcribe_whole", time.Since(start)))
	return *out.Text, nil
}

func (p *Provider) args(path string) []string {
	var args []string
	if p.cfg.Script != "" {
		args = append(args, p.cfg.Script)
	}
	args = append(args, path)
	if p.cfg.Model != "" {
		args = append(args, "--model", p.cfg.Model)
	}
	return args
}

// diagnostic prefers the {"error": ...} object on stderr, else the raw
// stderr text.
func diagnostic(res *process.Result) string {
	if res == nil {
		return ""
	}
	stderr := bytes.TrimSpace(res.Stderr)
	if len(stderr) == 0 {
		return ""
	}
	lines := bytes.Split(stderr, []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		var out output
		if json.Unmarshal(bytes.TrimSpace(lines[i]), &out) == nil && out.Error != "" {
			return out.Error
		}
	}
	return res.StderrTail(5)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
