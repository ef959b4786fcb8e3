package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/scribe/logger"
)

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := config.resource()
	if err != nil {
		return nil, err
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// JobMetrics holds instruments for transcription jobs.
// A nil *JobMetrics is valid and records nothing.
type JobMetrics struct {
	jobTotal        metric.Int64Counter
	jobDuration     metric.Float64Histogram
	jobActive       metric.Int64UpDownCounter
	segmentTotal    metric.Int64Counter
	segmentDuration metric.Float64Histogram
	errorTotal      metric.Int64Counter
}

// NewJobMetrics creates job instruments on the given meter.
func NewJobMetrics(meter metric.Meter) (*JobMetrics, error) {
	jobTotal, err := meter.Int64Counter("transcription.jobs",
		metric.WithDescription("Completed transcription jobs by mode and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.jobs counter: %w", err)
	}

	jobDuration, err := meter.Float64Histogram("transcription.job.duration",
		metric.WithDescription("Duration of transcription jobs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.job.duration histogram: %w", err)
	}

	jobActive, err := meter.Int64UpDownCounter("transcription.jobs.active",
		metric.WithDescription("Number of jobs currently running"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.jobs.active gauge: %w", err)
	}

	segmentTotal, err := meter.Int64Counter("transcription.segments",
		metric.WithDescription("Transcribed segments by status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.segments counter: %w", err)
	}

	segmentDuration, err := meter.Float64Histogram("transcription.segment.duration",
		metric.WithDescription("Duration of segment transcription in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.segment.duration histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("transcription.errors",
		metric.WithDescription("Job failures by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.errors counter: %w", err)
	}

	return &JobMetrics{
		jobTotal:        jobTotal,
		jobDuration:     jobDuration,
		jobActive:       jobActive,
		segmentTotal:    segmentTotal,
		segmentDuration: segmentDuration,
		errorTotal:      errorTotal,
	}, nil
}

// RecordJobStart increments the active job count.
func (m *JobMetrics) RecordJobStart(ctx context.Context) {
	if m == nil {
		return
	}
	m.jobActive.Add(ctx, 1)
}

// RecordJobEnd decrements active jobs and records the completed job.
func (m *JobMetrics) RecordJobEnd(ctx context.Context, mode, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.jobActive.Add(ctx, -1)
	m.jobTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("status", status),
	))
	m.jobDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("mode", mode),
	))
}

// RecordSegment records one segment dispatch.
func (m *JobMetrics) RecordSegment(ctx context.Context, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.segmentTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	m.segmentDuration.Record(ctx, duration.Seconds())
}

// RecordError records a job failure by error code and the stage that failed.
func (m *JobMetrics) RecordError(ctx context.Context, code, stage string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("stage", stage),
	))
}
