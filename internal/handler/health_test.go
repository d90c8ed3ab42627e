package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kube-rca/tasks/internal/model"
)

func TestRootAndPing(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	var root model.RootResponse
	decode(t, w, &root)
	if root.Message != "Welcome to Task Management System API" || root.OpenAPI != testPrefix+"/openapi.json" || root.Docs != testPrefix+"/docs" {
		t.Fatalf("unexpected root: %+v", root)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	var ping model.PingResponse
	decode(t, w, &ping)
	if ping.Message != "pong" {
		t.Fatalf("unexpected ping: %+v", ping)
	}
}

func TestOpenAPIDoc(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, testPrefix+"/openapi.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("document is not JSON: %v", err)
	}
	for _, path := range []string{"/api/v1/register", "/api/v1/login", "/api/v1/tasks", "/api/v1/tasks/{id}"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Fatalf("document missing %s", path)
		}
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, testPrefix+"/docs", nil))
	if w.Code != http.StatusTemporaryRedirect || w.Header().Get("Location") != testPrefix+"/openapi.json" {
		t.Fatalf("unexpected docs redirect: %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	expectError(t, w, http.StatusNotFound, "Not Found")
}
