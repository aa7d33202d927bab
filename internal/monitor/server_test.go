package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestServer_handleHealth(t *testing.T) {
	s := New(":0")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp["status"] != "healthy" {
		t.Errorf("expected status 'healthy', got %q", resp["status"])
	}
}

func TestServer_handleReady_NoCheckers(t *testing.T) {
	s := New(":0")

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()

	s.handleReady(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp ReadyResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != StatusReady {
		t.Errorf("expected status %q, got %q", StatusReady, resp.Status)
	}
}

func TestServer_handleReady_AllHealthy(t *testing.T) {
	s := New(":0")

	s.RegisterChecker("wapi:ping", func(ctx context.Context) error {
		return nil
	})
	s.RegisterChecker("dns:soa", func(ctx context.Context) error {
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()

	s.handleReady(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp ReadyResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != StatusReady {
		t.Errorf("expected status %q, got %q", StatusReady, resp.Status)
	}

	if len(resp.Components) != 2 {
		t.Errorf("expected 2 components, got %d", len(resp.Components))
	}

	for _, c := range resp.Components {
		if !c.Healthy {
			t.Errorf("expected component %q to be healthy", c.Name)
		}
	}
}

func TestServer_handleReady_SomeUnhealthy(t *testing.T) {
	s := New(":0")

	s.RegisterChecker("wapi:ping", func(ctx context.Context) error {
		return nil
	})
	s.RegisterChecker("dns:soa", func(ctx context.Context) error {
		return errors.New("connection refused")
	})

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()

	s.handleReady(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}

	var resp ReadyResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != StatusNotReady {
		t.Errorf("expected status %q, got %q", StatusNotReady, resp.Status)
	}

	healthyCount := 0
	unhealthyCount := 0
	for _, c := range resp.Components {
		if c.Healthy {
			healthyCount++
		} else {
			unhealthyCount++
			if c.Error != "connection refused" {
				t.Errorf("expected error 'connection refused', got %q", c.Error)
			}
		}
	}

	if healthyCount != 1 || unhealthyCount != 1 {
		t.Errorf("expected 1 healthy and 1 unhealthy, got %d healthy and %d unhealthy",
			healthyCount, unhealthyCount)
	}
}

func TestServer_handleReady_Timeout(t *testing.T) {
	s := New(":0", WithTimeout(50*time.Millisecond))

	s.RegisterChecker("wapi:slow", func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
			return nil
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()

	s.handleReady(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	s := New("127.0.0.1:0")

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown failed: %v", err)
		}
	}()

	resp, err := http.Get("http://" + s.Addr() + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if len(body) == 0 {
		t.Error("expected non-empty metrics body")
	}
}

func TestServer_Start_BadAddr(t *testing.T) {
	s := New("127.0.0.1:999999")

	if err := s.Start(); err == nil {
		t.Error("Start should fail for an invalid address")
		_ = s.Shutdown(context.Background())
	}
}
