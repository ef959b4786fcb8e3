package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/segment"
	"github.com/kbukum/scribe/transcription"
)

// Media probes and renders audio. Implemented by media.FFmpeg.
type Media interface {
	ProbeDuration(ctx context.Context, path string) (float64, error)
	ExtractAudio(ctx context.Context, input, output string) error
	ExtractRange(ctx context.Context, input, output string, start, length float64) error
}

// Planner splits a duration into ordered ranges. segment.Plan by default.
type Planner func(total, length float64) []segment.Range

// Orchestrator runs jobs in a fixed mode.
type Orchestrator struct {
	mode    transcription.Mode
	cfg     Config
	media   Media
	remote  transcription.Remote
	local   transcription.Local
	plan    Planner
	metrics *observability.JobMetrics
	log     *logger.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithMedia sets the media tool used on the segmented path.
func WithMedia(m Media) Option {
	return func(o *Orchestrator) { o.media = m }
}

// WithRemote sets the remote backend.
func WithRemote(r transcription.Remote) Option {
	return func(o *Orchestrator) { o.remote = r }
}

// WithLocal sets the local backend.
func WithLocal(l transcription.Local) Option {
	return func(o *Orchestrator) { o.local = l }
}

// WithPlanner replaces segment.Plan.
func WithPlanner(p Planner) Option {
	return func(o *Orchestrator) { o.plan = p }
}

// WithMetrics records job metrics.
func WithMetrics(m *observability.JobMetrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// New creates an Orchestrator for mode. The backends that mode needs must
// be supplied as options.
func New(mode transcription.Mode, cfg Config, log *logger.Logger, opts ...Option) (*Orchestrator, error) {
	cfg.ApplyDefaults()
	o := &Orchestrator{
		mode: mode,
		cfg:  cfg,
		plan: segment.Plan,
		log:  log.WithComponent("pipeline"),
	}
	for _, opt := range opts {
		opt(o)
	}

	switch mode {
	case transcription.ModeLocal:
		if o.local == nil {
			return nil, fmt.Errorf("pipeline: local mode requires a local backend")
		}
	case transcription.ModeRemote:
		if o.remote == nil {
			return nil, fmt.Errorf("pipeline: remote mode requires a remote backend")
		}
		if o.media == nil {
			return nil, fmt.Errorf("pipeline: remote mode requires a media tool")
		}
	default:
		return nil, fmt.Errorf("pipeline: unknown mode %q", mode)
	}
	if cfg.SegmentSeconds <= 0 {
		return nil, fmt.Errorf("pipeline: segment length must be positive")
	}
	return o, nil
}

// Mode returns the configured mode.
func (o *Orchestrator) Mode() transcription.Mode { return o.mode }

// Label returns the display name of the active backend: "local" or the
// remote service label.
func (o *Orchestrator) Label() string {
	if o.mode == transcription.ModeRemote {
		return o.remote.Label()
	}
	return string(transcription.ModeLocal)
}

// NewJob creates a job with a fresh ID in the orchestrator's mode.
func (o *Orchestrator) NewJob(path string, size int64) Job {
	return Job{
		ID:        uuid.NewString(),
		InputPath: path,
		Size:      size,
		Mode:      o.mode,
	}
}

// Transcribe runs job to completion. Errors are *errors.AppError. Temporary
// files are gone when it returns; the input file is left in place.
func (o *Orchestrator) Transcribe(ctx context.Context, job Job) (res *Result, err error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Mode == "" {
		job.Mode = o.mode
	}

	ctx = logger.ContextWithJobID(ctx, job.ID)
	log := o.log.WithContext(ctx).WithFields(logger.Fields(logger.FieldMode, string(job.Mode)))

	op := observability.NewJobOperation(job.ID, string(job.Mode), logger.RequestIDFromContext(ctx), o.metrics)
	ctx = op.Start(ctx)
	defer func() {
		if err != nil {
			appErr := errors.From(err)
			err = appErr
			fields := logger.Fields("code", string(appErr.Code), logger.FieldError, appErr.Error())
			o.enter(log, StateFailed, fields)
			op.End(ctx, string(appErr.Code), appErr)
			return
		}
		o.enter(log, StateSucceeded, logger.DurationFields("transcribe", op.Duration()))
		op.End(ctx, "", nil)
	}()

	if job.Mode != o.mode {
		return nil, errors.Internal(fmt.Errorf("job mode %q does not match configured mode %q", job.Mode, o.mode))
	}

	var (
		text     string
		segments int
	)
	switch job.Mode {
	case transcription.ModeLocal:
		text, err = o.runLocal(ctx, log, job)
	default:
		if job.Size <= 0 {
			info, statErr := os.Stat(job.InputPath)
			if statErr != nil {
				return nil, errors.Internal(statErr)
			}
			job.Size = info.Size()
		}
		observability.SetSpanAttribute(ctx, observability.AttrInputBytes, job.Size)
		if job.Size <= o.remote.MaxPayloadBytes() {
			text, err = o.runSingleShot(ctx, log, job)
		} else {
			text, segments, err = o.runSegmented(ctx, log, job)
		}
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		JobID:    job.ID,
		Mode:     job.Mode,
		Text:     text,
		Segments: segments,
		Duration: op.Duration(),
	}, nil
}

func (o *Orchestrator) runLocal(ctx context.Context, log *logger.Logger, job Job) (string, error) {
	o.enter(log, StateInvoking, nil)
	text, err := o.local.TranscribeWhole(ctx, job.InputPath)
	if err != nil {
		return "", err
	}
	return segment.Join([]string{text}), nil
}

func (o *Orchestrator) runSingleShot(ctx context.Context, log *logger.Logger, job Job) (string, error) {
	o.enter(log, StateSingleShot, logger.Fields(logger.FieldBytes, job.Size))
	text, err := o.remote.TranscribeOne(ctx, job.InputPath)
	if err != nil {
		return "", err
	}
	return segment.Join([]string{text}), nil
}

func (o *Orchestrator) runSegmented(ctx context.Context, log *logger.Logger, job Job) (string, int, error) {
	scope := newTempScope(o.cfg.TempDir, job.ID, log)
	defer scope.release()

	o.enter(log, StateExtractingAudio, logger.Fields(logger.FieldBytes, job.Size))
	audio := scope.acquire("audio.mp3")
	extractCtx, span := observability.StartSpan(ctx, observability.SpanExtract)
	err := o.media.ExtractAudio(extractCtx, job.InputPath, audio)
	observability.SetSpanError(extractCtx, err)
	span.End()
	if err != nil {
		return "", 0, err
	}

	o.enter(log, StatePlanning, nil)
	total, err := o.media.ProbeDuration(ctx, audio)
	if err != nil {
		return "", 0, err
	}
	ranges := o.plan(total, o.cfg.SegmentSeconds)
	observability.SetSpanAttribute(ctx, observability.AttrSegmentCount, len(ranges))

	o.enter(log, StateTranscribingSegments, logger.Fields(
		logger.FieldSegments, len(ranges),
		"audio_seconds", total,
	))
	stream := Map(FromSlice(ranges), func(ctx context.Context, r segment.Range) (string, error) {
		return o.transcribeRange(ctx, log, scope, audio, r, len(ranges))
	})
	texts, err := Collect(ctx, stream)
	if err != nil {
		return "", 0, err
	}

	o.enter(log, StateJoining, nil)
	return segment.Join(texts), len(ranges), nil
}

func (o *Orchestrator) transcribeRange(
	ctx context.Context,
	log *logger.Logger,
	scope *tempScope,
	audio string,
	r segment.Range,
	count int,
) (text string, err error) {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, observability.SpanSegment)
	span.SetAttributes(
		attribute.Int(observability.AttrSegmentIndex, r.Index),
		attribute.Float64(observability.AttrSegmentStart, r.Start),
	)
	defer func() {
		status := observability.StatusOK
		if err != nil {
			status = observability.StatusError
			observability.SetSpanError(ctx, err)
		}
		span.End()
		o.metrics.RecordSegment(ctx, status, time.Since(start))
	}()

	out := scope.acquire(fmt.Sprintf("seg-%03d.mp3", r.Index))
	if err := o.media.ExtractRange(ctx, audio, out, r.Start, r.Length); err != nil {
		return "", err
	}
	text, err = o.remote.TranscribeOne(ctx, out)
	if err != nil {
		log.Warn("segment failed", logger.Fields(
			logger.FieldSegment, r.Index,
			logger.FieldSegments, count,
			logger.FieldError, err.Error(),
		))
		return "", err
	}
	log.Debug("segment transcribed", logger.Fields(
		logger.FieldSegment, r.Index,
		logger.FieldSegments, count,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return text, nil
}

func (o *Orchestrator) enter(log *logger.Logger, state State, fields map[string]interface{}) {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields[logger.FieldState] = string(state)
	if state == StateFailed {
		log.Error("job state", fields)
		return
	}
	log.Info("job state", fields)
}
