package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/scribe/observability"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, path string, h gin.HandlerFunc) (int, map[string]any) {
	t.Helper()
	r := gin.New()
	r.GET(path, h)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	return rr.Code, body
}

func checker(hs ...observability.Health) HealthChecker {
	return func(context.Context) []observability.Health { return hs }
}

var info = ServiceInfo{Name: "scribe", Version: "1.2.3", Mode: "OpenAI whisper-1"}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		components []observability.Health
		wantCode   int
		wantStatus string
	}{
		{"no components", nil, http.StatusOK, "up"},
		{"all up", []observability.Health{{Name: "redis", Status: observability.HealthStatusUp}}, http.StatusOK, "up"},
		{"degraded", []observability.Health{{Name: "redis", Status: observability.HealthStatusDegraded}}, http.StatusOK, "degraded"},
		{"down", []observability.Health{
			{Name: "redis", Status: observability.HealthStatusDegraded},
			{Name: "http-server", Status: observability.HealthStatusDown},
		}, http.StatusServiceUnavailable, "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := serve(t, "/health", Health(info, checker(tt.components...)))
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if body["status"] != tt.wantStatus {
				t.Errorf("status = %v, want %s", body["status"], tt.wantStatus)
			}
			if body["mode"] != "OpenAI whisper-1" {
				t.Errorf("mode = %v", body["mode"])
			}
		})
	}
}

func TestHealth_NilChecker(t *testing.T) {
	code, body := serve(t, "/health", Health(info, nil))
	if code != http.StatusOK || body["status"] != "up" {
		t.Fatalf("got %d %v", code, body)
	}
}

func TestReadiness(t *testing.T) {
	code, body := serve(t, "/ready", Readiness(info, checker(observability.Health{Name: "redis", Status: observability.HealthStatusDegraded})))
	if code != http.StatusOK || body["status"] != "ready" {
		t.Fatalf("degraded: got %d %v", code, body)
	}

	code, body = serve(t, "/ready", Readiness(info, checker(observability.Health{Name: "http-server", Status: observability.HealthStatusDown})))
	if code != http.StatusServiceUnavailable || body["status"] != "not_ready" {
		t.Fatalf("down: got %d %v", code, body)
	}
	if down, _ := body["down"].([]any); len(down) != 1 || down[0] != "http-server" {
		t.Errorf("down = %v", body["down"])
	}
}

func TestInfo(t *testing.T) {
	code, body := serve(t, "/info", Info(info))
	if code != http.StatusOK {
		t.Fatalf("code = %d", code)
	}
	if body["service"] != "scribe" || body["mode"] != "OpenAI whisper-1" {
		t.Fatalf("unexpected body: %v", body)
	}
	if v, _ := body["version"].(string); v == "" {
		t.Fatal("missing version")
	}
	build, _ := body["build"].(map[string]any)
	if _, ok := build["go_version"]; !ok {
		t.Errorf("build info missing go_version: %v", body["build"])
	}
}
