package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/scribe/logger"
)

// slowRequest flags requests that outlive a typical single-shot job.
const slowRequest = 30 * time.Second

// quietPaths are probed by orchestrators and never logged.
var quietPaths = map[string]bool{"/health": true, "/ready": true, "/info": true}

// RequestLogger writes one access-log line per request. The level follows
// the status class: 5xx at error, 4xx at warn, the rest at info.
func RequestLogger(log *logger.Logger) Middleware {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent("http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if quietPaths[strings.TrimSuffix(r.URL.Path, "/")] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			elapsed := time.Since(start)

			fields := logger.Fields(
				"method", r.Method,
				logger.FieldPath, r.URL.Path,
				"status", sw.status,
				"duration_ms", elapsed.Milliseconds(),
				"bytes_in", r.ContentLength,
				"bytes_out", sw.bytes,
			)
			if elapsed > slowRequest {
				fields["slow"] = true
			}

			l := log.WithContext(r.Context())
			switch {
			case sw.status >= http.StatusInternalServerError:
				l.Error("Request completed", fields)
			case sw.status >= http.StatusBadRequest:
				l.Warn("Request completed", fields)
			default:
				l.Info("Request completed", fields)
			}
		})
	}
}
