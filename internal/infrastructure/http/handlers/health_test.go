package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func ok(context.Context) error { return nil }

func runReadiness(t *testing.T, checks map[string]Check) (*httptest.ResponseRecorder, readinessResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	if err := NewReadinessHandler(checks).Readiness(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec, resp
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	if err := NewHealthHandler().Liveness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness_AllHealthy(t *testing.T) {
	rec, resp := runReadiness(t, map[string]Check{"postgres": ok, "mongodb": ok, "redis": ok})

	if rec.Code != http.StatusOK || resp.Status != "ok" {
		t.Fatalf("expected 200 ok, got %d %s", rec.Code, resp.Status)
	}
	if len(resp.Dependencies) != 3 {
		t.Fatalf("expected 3 dependencies, got %+v", resp.Dependencies)
	}
}

func TestReadiness_OneDependencyDown(t *testing.T) {
	down := func(context.Context) error { return errors.New("connection refused") }
	rec, resp := runReadiness(t, map[string]Check{"postgres": ok, "mongodb": down, "redis": ok})

	if rec.Code != http.StatusServiceUnavailable || resp.Status != "degraded" {
		t.Fatalf("expected 503 degraded, got %d %s", rec.Code, resp.Status)
	}
	if got := resp.Dependencies["mongodb"]; got.Status != "unhealthy" || got.Error != "connection refused" {
		t.Fatalf("unexpected mongodb status: %+v", got)
	}
	if resp.Dependencies["postgres"].Status != "ok" {
		t.Fatalf("postgres should be ok: %+v", resp.Dependencies)
	}
}
