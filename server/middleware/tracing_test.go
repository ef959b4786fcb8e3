package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/server/middleware"
)

func recordSpans(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})
	return exporter
}

func TestTracing_ContinuesIncomingTrace(t *testing.T) {
	exporter := recordSpans(t)

	var inner trace.SpanContext
	handler := middleware.Chain(middleware.RequestID(), middleware.Tracing())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inner = trace.SpanContextFromContext(r.Context())
			w.WriteHeader(http.StatusAccepted)
		}))

	req := httptest.NewRequest("POST", "/api/transcribe", http.NoBody)
	req.Header.Set("traceparent", "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Name != observability.SpanHTTPRequest || s.SpanKind != trace.SpanKindServer {
		t.Errorf("unexpected span %q kind %v", s.Name, s.SpanKind)
	}
	if got := s.SpanContext.TraceID().String(); got != "0af7651916cd43dd8448eb211c80319c" {
		t.Errorf("expected incoming trace id, got %s", got)
	}
	if inner.SpanID() != s.SpanContext.SpanID() {
		t.Error("handler should see the server span in its context")
	}
	status, reqID := int64(0), ""
	for _, kv := range s.Attributes {
		switch string(kv.Key) {
		case observability.AttrHTTPStatus:
			status = kv.Value.AsInt64()
		case observability.AttrRequestID:
			reqID = kv.Value.AsString()
		}
	}
	if status != http.StatusAccepted || reqID == "" {
		t.Errorf("expected status 202 and a request id, got %d %q", status, reqID)
	}
}

func TestTracing_MarksServerErrors(t *testing.T) {
	exporter := recordSpans(t)

	handler := middleware.Tracing()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/transcribe", http.NoBody))

	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Status.Code != codes.Error {
		t.Fatalf("expected one failed span, got %+v", spans)
	}
}
