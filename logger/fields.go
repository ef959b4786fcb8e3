package logger

import "time"

// Field keys shared across packages.
const (
	FieldComponent = "component"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldRequestID = "request_id"
	FieldJobID     = "job_id"
	FieldMode      = "mode"
	FieldState     = "state"
	FieldSegment   = "segment"
	FieldSegments  = "segments"
	FieldPath      = "path"
	FieldBytes     = "bytes"
	FieldAttempt   = "attempt"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Fields turns alternating key/value pairs into a field map. Pairs with a
// non-string key and a trailing odd value are dropped.
//
//	log.Info("segment done", logger.Fields(logger.FieldSegment, 2))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// DurationFields records how long op took, in milliseconds.
func DurationFields(op string, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldDuration:  d.Milliseconds(),
	}
}
