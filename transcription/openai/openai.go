// Package openai implements the remote transcription backend against any
// OpenAI-compatible /audio/transcriptions endpoint.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/resilience"
	"github.com/kbukum/scribe/transcription"
	"github.com/kbukum/scribe/util"
)

// ProviderName is the label shown by the mode query.
const ProviderName = "openai"

var _ transcription.Remote = (*Provider)(nil)

// Provider implements transcription.Remote with go-openai.
type Provider struct {
	cfg    Config
	client *goopenai.Client
	retry  resilience.RetryConfig
	log    *logger.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithRetryConfig overrides the retry policy; RetryIf is always limited to
// retryable errors.
func WithRetryConfig(rc resilience.RetryConfig) Option {
	return func(p *Provider) { p.retry = rc }
}

// WithHTTPClient replaces the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) {
		oc := p.clientConfig()
		oc.HTTPClient = c
		p.client = goopenai.NewClientWithConfig(oc)
	}
}

// NewProvider creates a remote backend from configuration.
func NewProvider(cfg Config, log *logger.Logger, opts ...Option) *Provider {
	cfg.ApplyDefaults()
	p := &Provider{
		cfg:   cfg,
		retry: resilience.DefaultRetryConfig(),
		log:   log.WithComponent("openai"),
	}
	p.retry.MaxAttempts = cfg.MaxAttempts
	p.client = goopenai.NewClientWithConfig(p.clientConfig())
	for _, opt := range opts {
		opt(p)
	}
	p.retry.RetryIf = resilience.RetryIfRetryable
	p.retry.OnRetry = func(attempt int, err error, backoff time.Duration) {
		p.log.Warn("transcription request failed, retrying", logger.Fields(
			logger.FieldAttempt, attempt,
			logger.FieldError, err.Error(),
			"backoff_ms", backoff.Milliseconds(),
		))
	}

	p.log.Debug("remote backend configured", logger.Fields(
		"base_url", cfg.BaseURL,
		"model", cfg.Model,
		"api_key", util.MaskSecret(cfg.APIKey, 5),
		"max_payload_bytes", cfg.MaxPayloadBytes(),
	))
	return p
}

func (p *Provider) clientConfig() goopenai.ClientConfig {
	oc := goopenai.DefaultConfig(p.cfg.APIKey)
	oc.BaseURL = p.cfg.BaseURL
	return oc
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// Label returns the service name shown by the mode query.
func (p *Provider) Label() string { return ProviderName }

// IsAvailable reports whether a credential is configured. It does not call
// the service.
func (p *Provider) IsAvailable(_ context.Context) bool {
	return p.cfg.APIKey != ""
}

// MaxPayloadBytes is the largest file sent in one request.
func (p *Provider) MaxPayloadBytes() int64 {
	return p.cfg.MaxPayloadBytes()
}

// TranscribeOne sends the file at path and returns its transcript text.
// Connectivity failures and rate limiting are retried with backoff up to
// MaxAttempts; every other failure is returned immediately.
func (p *Provider) TranscribeOne(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Internal(fmt.Errorf("stat %s: %w", path, err))
	}
	limit := p.MaxPayloadBytes()
	if info.Size() > limit {
		return "", errors.SegmentTooLarge(info.Size(), limit)
	}

	return resilience.Retry(ctx, p.retry, func() (string, error) {
		return p.transcribe(ctx, path, info.Size())
	})
}

func (p *Provider) transcribe(ctx context.Context, path string, size int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := p.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    p.cfg.Model,
		FilePath: path,
		Language: p.cfg.Language,
		Format:   goopenai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", classify(err, size, p.MaxPayloadBytes())
	}

	fields := logger.DurationFields("transcribe", time.Since(start))
	fields[logger.FieldBytes] = size
	p.log.Debug("transcription request completed", fields)
	return resp.Text, nil
}
