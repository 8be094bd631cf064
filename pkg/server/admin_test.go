package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"mercator-hq/callisto/pkg/telemetry/health"
)

func TestAdmin_ServesRoutes(t *testing.T) {
	rt := NewRuntime(2, discardLogger())
	defer rt.Stop()

	srv := New(rt, Options{Endpoints: []Endpoint{loopback()}, Logger: discardLogger()})
	srv.Start(rt.Context())

	var logClosed atomic.Bool
	checker := health.New(time.Second)
	RegisterReadiness(checker, srv, logClosed.Load)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "callisto_up 1\n")
	})

	admin, err := ListenAdmin(context.Background(), AdminOptions{
		Address:     "127.0.0.1:0",
		MetricsPath: "/metrics",
		Metrics:     metrics,
		Checker:     checker,
		Build:       health.BuildInfo{Version: "test", Instance: "abc"},
	}, discardLogger())
	if err != nil {
		t.Fatalf("ListenAdmin() error = %v", err)
	}
	rt.Spawn("admin", admin.Serve)

	base := "http://" + admin.Addr().String()
	get := func(path string) (int, string) {
		t.Helper()
		resp, err := http.Get(base + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(body)
	}

	if code, body := get("/metrics"); code != http.StatusOK || body != "callisto_up 1\n" {
		t.Errorf("unexpected /metrics reply %d %q", code, body)
	}
	if code, _ := get("/health"); code != http.StatusOK {
		t.Errorf("expected /health 200, got %d", code)
	}
	if code, _ := get("/ready"); code != http.StatusOK {
		t.Errorf("expected /ready 200, got %d", code)
	}

	code, body := get("/version")
	var info health.BuildInfo
	if err := json.Unmarshal([]byte(body), &info); err != nil || code != http.StatusOK {
		t.Fatalf("bad /version reply %d %q: %v", code, body, err)
	}
	if info.Instance != "abc" {
		t.Errorf("expected instance abc, got %q", info.Instance)
	}

	logClosed.Store(true)
	if code, _ := get("/ready"); code != http.StatusServiceUnavailable {
		t.Errorf("expected /ready 503 once the log queue closes, got %d", code)
	}
}

func TestRegisterReadiness_NoListeners(t *testing.T) {
	rt := NewRuntime(1, discardLogger())
	defer rt.Stop()

	checker := health.New(time.Second)
	RegisterReadiness(checker, New(rt, Options{}), nil)

	status := checker.Ready(context.Background())
	if status.Status != health.StatusDegraded {
		t.Errorf("expected degraded without listeners, got %q", status.Status)
	}
	if status.Checks["listeners"].Status != health.StatusUnhealthy {
		t.Errorf("expected listeners check to fail, got %+v", status.Checks["listeners"])
	}
	if status.Checks["log_drain"].Status != health.StatusOK {
		t.Errorf("expected log_drain check to pass, got %+v", status.Checks["log_drain"])
	}
}
