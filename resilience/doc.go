// Package resilience retries failed remote calls with exponential backoff.
//
//	text, err := resilience.Retry(ctx, resilience.RetryConfig{
//	    MaxAttempts: 4,
//	    RetryIf:     resilience.RetryIfRetryable,
//	}, func() (string, error) {
//	    return call(ctx)
//	})
package resilience
