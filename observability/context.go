package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Status values recorded on spans and metrics.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// JobOperation tracks the span and metrics of a single transcription job.
type JobOperation struct {
	JobID     string
	Mode      string
	RequestID string
	StartTime time.Time
	Metrics   *JobMetrics

	span trace.Span
}

// NewJobOperation creates a job operation.
// If metrics is nil, metric recording is silently skipped.
func NewJobOperation(jobID, mode, requestID string, metrics *JobMetrics) *JobOperation {
	return &JobOperation{
		JobID:     jobID,
		Mode:      mode,
		RequestID: requestID,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

type jobOperationKey struct{}

// WithJobOperation stores a JobOperation in the context.
func WithJobOperation(ctx context.Context, op *JobOperation) context.Context {
	return context.WithValue(ctx, jobOperationKey{}, op)
}

// JobOperationFromContext retrieves the JobOperation from context, or nil.
func JobOperationFromContext(ctx context.Context) *JobOperation {
	if op, ok := ctx.Value(jobOperationKey{}).(*JobOperation); ok {
		return op
	}
	return nil
}

// Start opens the job span, records the job start metric and stores the
// operation in the returned context.
func (op *JobOperation) Start(ctx context.Context) context.Context {
	ctx, op.span = StartSpan(ctx, SpanJob)
	op.span.SetAttributes(
		attribute.String(AttrJobID, op.JobID),
		attribute.String(AttrMode, op.Mode),
	)
	if op.RequestID != "" {
		op.span.SetAttributes(attribute.String(AttrRequestID, op.RequestID))
	}
	op.Metrics.RecordJobStart(ctx)
	return WithJobOperation(ctx, op)
}

// End closes the job span and records job-end metrics. code is the error
// code of a failed job and is ignored when err is nil.
func (op *JobOperation) End(ctx context.Context, code string, err error) {
	duration := op.Duration()
	status := StatusOK
	if err != nil {
		status = StatusError
	}

	if op.span != nil {
		if err != nil {
			SetSpanError(trace.ContextWithSpan(ctx, op.span), err)
			op.span.SetAttributes(attribute.String(AttrErrorCode, code))
		}
		op.span.SetAttributes(
			attribute.String(AttrStatus, status),
			attribute.Int64(AttrDurationMs, duration.Milliseconds()),
		)
		op.span.End()
	}

	if err != nil {
		op.Metrics.RecordError(ctx, code, op.Mode)
	}
	op.Metrics.RecordJobEnd(ctx, op.Mode, status, duration)
}

// Duration returns the elapsed time since the job started.
func (op *JobOperation) Duration() time.Duration {
	return time.Since(op.StartTime)
}
