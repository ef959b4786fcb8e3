package middleware_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/server/middleware"
)

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func status(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(code) })
}

func jsonLogger(level string) (*logger.Logger, *strings.Builder) {
	var buf strings.Builder
	return logger.NewWithWriter(&logger.Config{Level: level, Format: "json"}, "test", &buf), &buf
}

func TestRecovery(t *testing.T) {
	log, buf := jsonLogger("info")
	h := middleware.Recovery(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("decoder exploded")
	}))

	rr := serve(h, httptest.NewRequest(http.MethodPost, "/api/transcribe", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if len(body) != 1 || body["error"] != "Internal server error" {
		t.Fatalf("unexpected body %v", body)
	}
	if strings.Contains(rr.Body.String(), "decoder exploded") {
		t.Error("panic value leaked to the client")
	}
	if !strings.Contains(buf.String(), "decoder exploded") {
		t.Errorf("panic not logged: %s", buf.String())
	}

	if rr := serve(middleware.Recovery(logger.NewNop())(status(http.StatusOK)), httptest.NewRequest(http.MethodGet, "/", http.NoBody)); rr.Code != http.StatusOK {
		t.Errorf("status without panic = %d", rr.Code)
	}
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{"generated", ""},
		{"preserved", "custom-id-123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inCtx, inHeader string
			h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				inCtx = logger.RequestIDFromContext(r.Context())
				inHeader = r.Header.Get(middleware.HeaderRequestID)
			}))
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			if tt.incoming != "" {
				req.Header.Set(middleware.HeaderRequestID, tt.incoming)
			}

			got := serve(h, req).Header().Get(middleware.HeaderRequestID)

			if got == "" || got != inCtx || got != inHeader {
				t.Fatalf("response=%q context=%q request=%q", got, inCtx, inHeader)
			}
			if tt.incoming != "" && got != tt.incoming {
				t.Errorf("id = %q, want %q", got, tt.incoming)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	restricted := &middleware.CORSConfig{
		AllowedOrigins: []string{"https://example.com"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
	}
	open := &middleware.CORSConfig{}
	open.ApplyDefaults()

	tests := []struct {
		name       string
		cfg        *middleware.CORSConfig
		method     string
		origin     string
		wantCode   int
		wantOrigin string
		wantMaxAge string
	}{
		{"allowed origin", restricted, http.MethodPost, "https://example.com", http.StatusOK, "https://example.com", ""},
		{"disallowed origin", restricted, http.MethodGet, "https://evil.com", http.StatusOK, "", ""},
		{"preflight", open, http.MethodOptions, "https://app.example.com", http.StatusNoContent, "https://app.example.com", "600"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := middleware.CORS(tt.cfg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))
			req := httptest.NewRequest(tt.method, "/api/transcribe", http.NoBody)
			req.Header.Set("Origin", tt.origin)
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", "POST")
			}

			rr := serve(h, req)

			if rr.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantCode)
			}
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("allow origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := rr.Header().Get("Access-Control-Max-Age"); got != tt.wantMaxAge {
				t.Errorf("max age = %q, want %q", got, tt.wantMaxAge)
			}
			if called == (tt.method == http.MethodOptions) {
				t.Errorf("handler called = %v for %s", called, tt.method)
			}
		})
	}

	rr := serve(middleware.CORS(restricted)(status(http.StatusOK)), func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		req.Header.Set("Origin", "https://example.com")
		return req
	}())
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST" {
		t.Errorf("allow methods = %q", got)
	}
	if got := rr.Header().Get("Access-Control-Expose-Headers"); got != middleware.HeaderRequestID {
		t.Errorf("expose headers = %q", got)
	}
}

func TestCORSConfig_ApplyDefaults(t *testing.T) {
	var cfg middleware.CORSConfig
	cfg.ApplyDefaults()
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("origins = %v", cfg.AllowedOrigins)
	}
	if len(cfg.AllowedMethods) != 3 || cfg.MaxAge != 600 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		handler http.Handler
		want    []string
	}{
		{"client error at warn", "/api/transcribe", status(http.StatusBadRequest), []string{`"level":"warn"`, `"status":400`, `"path":"/api/transcribe"`}},
		{"server error at error", "/api/transcribe", status(http.StatusServiceUnavailable), []string{`"level":"error"`, `"status":503`}},
		{"response bytes", "/api/mode", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("hello"))
		}), []string{`"level":"info"`, `"status":200`, `"bytes_out":5`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := jsonLogger("info")
			serve(middleware.RequestLogger(log)(tt.handler), httptest.NewRequest(http.MethodPost, tt.path, http.NoBody))
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("log missing %s: %s", want, buf.String())
				}
			}
		})
	}
}

func TestRequestLogger_QuietPaths(t *testing.T) {
	for _, path := range []string{"/health", "/ready/", "/info"} {
		log, buf := jsonLogger("debug")
		called := false
		h := middleware.RequestLogger(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

		serve(h, httptest.NewRequest(http.MethodGet, path, http.NoBody))

		if !called {
			t.Errorf("%s: handler skipped", path)
		}
		if buf.Len() != 0 {
			t.Errorf("%s: logged %s", path, buf.String())
		}
	}
}

func TestBodySizeLimit(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		h := middleware.BodySizeLimit(1024)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := io.ReadAll(r.Body); err != nil {
				t.Errorf("read: %v", err)
			}
		}))
		if rr := serve(h, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small"))); rr.Code != http.StatusOK {
			t.Fatalf("status = %d", rr.Code)
		}
	})

	t.Run("declared length rejected up front", func(t *testing.T) {
		h := middleware.BodySizeLimit(1024)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Error("handler must not run")
		}))
		rr := serve(h, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 2048))))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "1KB request limit") {
			t.Errorf("body = %s", rr.Body.String())
		}
	})

	t.Run("undeclared length fails on read", func(t *testing.T) {
		var readErr error
		h := middleware.BodySizeLimit(1024)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			_, readErr = io.ReadAll(r.Body)
		}))
		req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader(strings.Repeat("x", 2048))))
		req.ContentLength = -1
		serve(h, req)

		var mbe *http.MaxBytesError
		if !errors.As(readErr, &mbe) || mbe.Limit != 1024 {
			t.Fatalf("read error = %v", readErr)
		}
	})

	t.Run("zero disables", func(t *testing.T) {
		next := status(http.StatusTeapot)
		if rr := serve(middleware.BodySizeLimit(0)(next), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x"))); rr.Code != http.StatusTeapot {
			t.Fatalf("status = %d", rr.Code)
		}
	})
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) middleware.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+">")
				next.ServeHTTP(w, r)
				order = append(order, "<"+name)
			})
		}
	}
	h := middleware.Chain(mark("a"), mark("b"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}))

	serve(h, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if got := strings.Join(order, " "); got != "a> b> handler <b <a" {
		t.Fatalf("order = %s", got)
	}
}

type flushRecorder struct {
	http.ResponseWriter
	flushed bool
}

func (f *flushRecorder) Flush() { f.flushed = true }

func TestStatusWriter_DelegatesFlush(t *testing.T) {
	fr := &flushRecorder{ResponseWriter: httptest.NewRecorder()}
	h := middleware.RequestLogger(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.NewResponseController(w).Flush()
	}))

	h.ServeHTTP(fr, httptest.NewRequest(http.MethodGet, "/stream", http.NoBody))

	if !fr.flushed {
		t.Error("Flush not delegated")
	}
}
