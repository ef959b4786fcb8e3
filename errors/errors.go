// Package errors holds the service's failure taxonomy. Every failure carries
// a code, a client-safe message, an HTTP status and a retryable flag.
package errors

import "fmt"

// AppError is a classified failure.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// Retryable is true for connectivity and rate-limit failures only.
	Retryable  bool `json:"retryable"`
	HTTPStatus int  `json:"-"`
	// Details stay server-side; they feed logs and retry decisions.
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying error and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges details into e and returns e.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// WithDetail sets one detail and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New builds an AppError whose status and retryability follow code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: StatusOf(code),
		Retryable:  IsRetryableCode(code),
	}
}

// InvalidInput rejects an upload or request field.
func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, "Invalid input: "+reason)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation rejects input with a pre-formatted message.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

// ProbeFailed reports that the media duration at path could not be read.
func ProbeFailed(path string, cause error) *AppError {
	return New(ErrCodeProbeFailed, "Could not determine the media duration.").
		WithDetail("path", path).WithCause(cause)
}

// ExtractionFailed reports a failed audio render to path.
func ExtractionFailed(path string, cause error) *AppError {
	return New(ErrCodeExtractionFailed, "Audio extraction failed.").
		WithDetail("path", path).WithCause(cause)
}

// SegmentTooLarge reports a rendered file above the remote payload limit.
func SegmentTooLarge(size, limit int64) *AppError {
	return New(ErrCodeSegmentTooLarge,
		fmt.Sprintf("Audio segment is %d bytes, above the %d byte limit.", size, limit)).
		WithDetails(map[string]any{"size": size, "limit": limit})
}

// Unauthorized reports a rejected credential.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Invalid API key."
	}
	return New(ErrCodeUnauthorized, reason)
}

// RateLimited reports throttling by the transcription service.
func RateLimited() *AppError {
	return New(ErrCodeRateLimited, "Rate limit exceeded. Please wait a moment and try again.")
}

// ConnectionFailed reports that service could not be reached.
func ConnectionFailed(service string) *AppError {
	return New(ErrCodeConnectionFailed, fmt.Sprintf("Unable to connect to %s. Please try again.", service)).
		WithDetail("service", service)
}

// LocalBackendFailed carries the diagnostic the local model process reported.
func LocalBackendFailed(diagnostic string) *AppError {
	if diagnostic == "" {
		diagnostic = "local transcription failed"
	}
	return New(ErrCodeLocalBackend, diagnostic)
}

// Internal wraps an unclassified failure behind a generic message.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred. Please try again.").WithCause(cause)
}
