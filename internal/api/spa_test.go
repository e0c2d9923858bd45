package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupSPADir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>journal</html>"), 0o644); err != nil {
		t.Fatalf("failed to write index: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('journal')"), 0o644); err != nil {
		t.Fatalf("failed to write asset: %v", err)
	}
	return dir
}

func TestSPAServesIndexAtRoot(t *testing.T) {
	router, cleanup := setupTestRouter(t)
	defer cleanup()
	handler := WithSPA(router, setupSPADir(t))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "journal") {
		t.Errorf("unexpected body %q", rr.Body.String())
	}
}

func TestSPAFallsBackToIndexForClientRoutes(t *testing.T) {
	router, cleanup := setupTestRouter(t)
	defer cleanup()
	handler := WithSPA(router, setupSPADir(t))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/history/2026-07", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected index fallback 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "journal") {
		t.Errorf("expected index content, got %q", rr.Body.String())
	}
}

func TestSPAServesStaticAssets(t *testing.T) {
	router, cleanup := setupTestRouter(t)
	defer cleanup()
	handler := WithSPA(router, setupSPADir(t))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/app.js", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("expected no-store, got %q", rr.Header().Get("Cache-Control"))
	}
}

func TestSPAPassesAPIThrough(t *testing.T) {
	router, cleanup := setupTestRouter(t)
	defer cleanup()
	handler := WithSPA(router, setupSPADir(t))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	result := parseJSON(rr)
	if result["status"] != "ok" {
		t.Errorf("api route not passed through: %v", result)
	}
}

func TestSPAMissingIndex(t *testing.T) {
	router, cleanup := setupTestRouter(t)
	defer cleanup()
	handler := WithSPA(router, t.TempDir())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 without index, got %d", rr.Code)
	}
}
