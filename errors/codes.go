package errors

import "net/http"

// ErrorCode is the machine-readable failure class.
type ErrorCode string

const (
	// Retryable: the transcription service could not be reached or answered
	// with a gateway error, or it throttled the request.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	ErrCodeRateLimited      ErrorCode = "RATE_LIMITED"

	// Bad upload or a request field, and a rendered file above the remote
	// payload limit.
	ErrCodeInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrCodeSegmentTooLarge ErrorCode = "SEGMENT_TOO_LARGE"

	// The remote credential was rejected.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Media duration probe or audio render failed.
	ErrCodeProbeFailed      ErrorCode = "PROBE_FAILED"
	ErrCodeExtractionFailed ErrorCode = "EXTRACTION_FAILED"

	ErrCodeLocalBackend ErrorCode = "LOCAL_BACKEND_FAILED"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

type codeInfo struct {
	status    int
	retryable bool
}

var codes = map[ErrorCode]codeInfo{
	ErrCodeConnectionFailed: {http.StatusServiceUnavailable, true},
	ErrCodeRateLimited:      {http.StatusTooManyRequests, true},
	ErrCodeInvalidInput:     {http.StatusBadRequest, false},
	ErrCodeSegmentTooLarge:  {http.StatusBadRequest, false},
	ErrCodeUnauthorized:     {http.StatusUnauthorized, false},
	ErrCodeProbeFailed:      {http.StatusInternalServerError, false},
	ErrCodeExtractionFailed: {http.StatusInternalServerError, false},
	ErrCodeLocalBackend:     {http.StatusInternalServerError, false},
	ErrCodeInternal:         {http.StatusInternalServerError, false},
}

// IsRetryableCode reports whether failures of this class may succeed on a
// later attempt.
func IsRetryableCode(code ErrorCode) bool {
	return codes[code].retryable
}

// StatusOf is the HTTP status for code; unknown codes map to 500.
func StatusOf(code ErrorCode) int {
	if info, ok := codes[code]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}
