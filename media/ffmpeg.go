package media

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/process"
	"github.com/kbukum/scribe/provider"
)

var _ provider.Provider = (*FFmpeg)(nil)

// stderrLines is how much tool output is kept as error detail.
const stderrLines = 5

// FFmpeg probes and renders media through the ffprobe and ffmpeg binaries.
type FFmpeg struct {
	cfg     Config
	probe   process.Runner
	convert process.Runner
	log     *logger.Logger
}

// Option configures an FFmpeg.
type Option func(*FFmpeg)

// WithRunners replaces the ffprobe and ffmpeg runners.
func WithRunners(probe, convert process.Runner) Option {
	return func(f *FFmpeg) {
		f.probe = probe
		f.convert = convert
	}
}

// New creates an FFmpeg from configuration.
func New(cfg Config, log *logger.Logger, opts ...Option) *FFmpeg {
	cfg.ApplyDefaults()
	f := &FFmpeg{
		cfg:     cfg,
		probe:   process.NewTool("ffprobe", cfg.FFprobePath, process.WithTimeout(cfg.Timeout)),
		convert: process.NewTool("ffmpeg", cfg.FFmpegPath, process.WithTimeout(cfg.Timeout)),
		log:     log.WithComponent("media"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name implements provider.Provider.
func (f *FFmpeg) Name() string { return "ffmpeg" }

// IsAvailable reports whether both tools can be resolved.
func (f *FFmpeg) IsAvailable(ctx context.Context) bool {
	for _, r := range []process.Runner{f.probe, f.convert} {
		if p, ok := r.(provider.Provider); ok && !p.IsAvailable(ctx) {
			return false
		}
	}
	return true
}

// probeOutput is the subset of `ffprobe -print_format json` we read.
type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeDuration returns the duration of the media file in seconds.
// It fails when the file has no audio stream or no readable duration.
func (f *FFmpeg) ProbeDuration(ctx context.Context, path string) (float64, error) {
	res, err := f.probe.Run(ctx, process.Command{
		Binary: f.cfg.FFprobePath,
		Args: []string{
			"-v", "error",
			"-print_format", "json",
			"-show_format", "-show_streams",
			path,
		},
	})
	if err != nil {
		return 0, f.toolError(errors.ProbeFailed(path, err), res)
	}

	var out probeOutput
	if err := json.Unmarshal(res.Stdout, &out); err != nil {
		return 0, errors.ProbeFailed(path, fmt.Errorf("parse ffprobe output: %w", err))
	}

	hasAudio := false
	for _, s := range out.Streams {
		if s.CodecType == "audio" {
			hasAudio = true
			break
		}
	}
	if !hasAudio {
		return 0, errors.ProbeFailed(path, fmt.Errorf("no audio stream"))
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(out.Format.Duration), 64)
	if err != nil || duration < 0 {
		return 0, errors.ProbeFailed(path, fmt.Errorf("invalid duration %q", out.Format.Duration))
	}
	return duration, nil
}

// ExtractAudio renders the audio track of input to output as mono mp3 at
// the configured sample rate and bitrate.
func (f *FFmpeg) ExtractAudio(ctx context.Context, input, output string) error {
	args := append([]string{"-y", "-i", input}, f.encodingArgs(output)...)
	return f.render(ctx, output, args)
}

// ExtractRange renders [start, start+length) seconds of input to output.
func (f *FFmpeg) ExtractRange(ctx context.Context, input, output string, start, length float64) error {
	args := append([]string{
		"-y",
		"-ss", formatSeconds(start),
		"-t", formatSeconds(length),
		"-i", input,
	}, f.encodingArgs(output)...)
	return f.render(ctx, output, args)
}

func (f *FFmpeg) render(ctx context.Context, output string, args []string) error {
	res, err := f.convert.Run(ctx, process.Command{Binary: f.cfg.FFmpegPath, Args: args})
	if err != nil {
		return f.toolError(errors.ExtractionFailed(output, err), res)
	}
	return nil
}

func (f *FFmpeg) encodingArgs(output string) []string {
	return []string{
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(f.cfg.SampleRate),
		"-b:a", f.cfg.Bitrate,
		"-f", "mp3",
		output,
	}
}

// toolError attaches the tail of the tool's stderr to appErr and logs it.
// Tool diagnostics never reach the client.
func (f *FFmpeg) toolError(appErr *errors.AppError, res *process.Result) *errors.AppError {
	if tail := res.StderrTail(stderrLines); tail != "" {
		appErr.WithDetail("stderr", tail)
	}
	f.log.Warn("media tool failed", logger.Fields(
		logger.FieldError, appErr.Error(),
		"stderr", appErr.Details["stderr"],
	))
	return appErr
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}
