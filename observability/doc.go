// Package observability wires OpenTelemetry tracing and metrics for
// transcription jobs, plus the health model served by /health.
//
// Exporters are only started when Config.Enabled is set; otherwise the
// global no-op providers are used and spans cost nothing.
//
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
//	metrics, err := observability.NewJobMetrics(observability.Meter("scribe"))
//	op := observability.NewJobOperation(job.ID, "remote", requestID, metrics)
//	ctx = op.Start(ctx)
//	defer op.End(ctx, code, err)
package observability
