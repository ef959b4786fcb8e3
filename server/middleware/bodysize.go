package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/util"
)

// BodySizeLimit caps request bodies at limit bytes. A declared
// Content-Length above the limit is answered with 400 before the handler
// runs; undeclared bodies fail on read with *http.MaxBytesError.
func BodySizeLimit(limit int64) Middleware {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				appErr := errors.InvalidInput("file", "file exceeds the "+util.FormatSize(limit)+" request limit")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(appErr.HTTPStatus)
				_ = json.NewEncoder(w).Encode(appErr.ToResponse())
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
