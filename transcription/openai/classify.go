package openai

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/resilience"
)

const serviceName = "OpenAI"

// retryAfterRe matches the delay in rate limit messages such as
// "Please try again in 1.5s." or "try again in 6m0s".
var retryAfterRe = regexp.MustCompile(`try again in ((?:\d+(?:\.\d+)?(?:ms|s|m|h))+)`)

// classify maps a client error onto the service error taxonomy.
// size is the payload that was sent, for SEGMENT_TOO_LARGE details.
func classify(err error, size, limit int64) *errors.AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr
	}

	var apiErr *goopenai.APIError
	if stderrors.As(err, &apiErr) {
		return fromStatus(apiErr.HTTPStatusCode, apiErr.Message, size, limit).WithCause(err)
	}
	var reqErr *goopenai.RequestError
	if stderrors.As(err, &reqErr) {
		return fromStatus(reqErr.HTTPStatusCode, "", size, limit).WithCause(err)
	}

	if stderrors.Is(err, context.Canceled) {
		return errors.Internal(err)
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.ConnectionFailed(serviceName).WithCause(err)
	}
	var netErr net.Error
	var urlErr *url.Error
	var dnsErr *net.DNSError
	if stderrors.As(err, &netErr) || stderrors.As(err, &urlErr) || stderrors.As(err, &dnsErr) {
		return errors.ConnectionFailed(serviceName).WithCause(err)
	}
	return errors.Internal(err)
}

func fromStatus(status int, message string, size, limit int64) *errors.AppError {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.Unauthorized("Invalid API key.")
	case http.StatusTooManyRequests:
		appErr := errors.RateLimited()
		if d, ok := retryAfter(message); ok {
			appErr.WithDetail(resilience.DetailRetryAfterMS, d.Milliseconds())
		}
		return appErr
	case http.StatusRequestEntityTooLarge:
		return errors.SegmentTooLarge(size, limit)
	case http.StatusBadRequest, http.StatusUnsupportedMediaType:
		if message == "" {
			message = "the transcription service rejected the file"
		}
		return errors.InvalidInput("file", message)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return errors.ConnectionFailed(serviceName)
	default:
		return errors.Internal(nil).WithDetail("status", status)
	}
}

func retryAfter(message string) (time.Duration, bool) {
	m := retryAfterRe.FindStringSubmatch(message)
	if m == nil {
		return 0, false
	}
	d, err := time.ParseDuration(m[1])
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}
