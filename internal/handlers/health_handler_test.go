package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeHealthChecker implements HealthChecker for testing
type fakeHealthChecker struct {
	err error
}

func (f *fakeHealthChecker) HealthCheck(_ context.Context) error {
	return f.err
}

func TestHealthHandler_Health(t *testing.T) {
	handler := NewHealthHandler(&fakeHealthChecker{})

	router := gin.New()
	router.GET("/health", handler.Health)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Status != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response.Status)
	}
	if response.Database != "ok" {
		t.Errorf("Expected database 'ok', got '%s'", response.Database)
	}
	if response.Uptime == "" {
		t.Error("Expected uptime to be set")
	}
}

func TestHealthHandler_HealthDegraded(t *testing.T) {
	handler := NewHealthHandler(&fakeHealthChecker{err: errors.New("connection refused")})

	router := gin.New()
	router.GET("/health", handler.Health)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}

	var response HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Status != "degraded" {
		t.Errorf("Expected status 'degraded', got '%s'", response.Status)
	}
	if response.Database != "unreachable" {
		t.Errorf("Expected database 'unreachable', got '%s'", response.Database)
	}
}

func TestHealthHandler_Ready(t *testing.T) {
	handler := NewHealthHandler(&fakeHealthChecker{})

	router := gin.New()
	router.GET("/ready", handler.Ready)

	req := httptest.NewRequest("GET", "/ready", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response MessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Message != "ready" {
		t.Errorf("Expected message 'ready', got '%s'", response.Message)
	}
}

func TestNewHealthHandler(t *testing.T) {
	handler := NewHealthHandler(&fakeHealthChecker{})

	if handler == nil {
		t.Fatal("Expected handler to be created")
	}
	if handler.startedAt.IsZero() {
		t.Error("Expected startedAt to be set")
	}
}
