package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"xref-api/internal/storage"
)

func TestHealthHandler(t *testing.T) {
	db, err := storage.New(filepath.Join(t.TempDir(), "health.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	h := NewHealthHandler(db)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var got HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if got.Status != "healthy" || got.Checks["database"] != "ok" {
		t.Errorf("body = %+v", got)
	}
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	db, err := storage.New(filepath.Join(t.TempDir(), "health.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	db.Close()

	h := NewHealthHandler(db)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var got HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if got.Status != "unhealthy" || len(got.Issues) == 0 {
		t.Errorf("body = %+v", got)
	}
}
