package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/tasks/internal/config"
	"github.com/kube-rca/tasks/internal/db"
	"github.com/kube-rca/tasks/internal/model"
	"github.com/kube-rca/tasks/internal/service"
	"golang.org/x/crypto/bcrypt"
)

const testPrefix = "/api/v1"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := db.OpenSQLite(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(store.Close)
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	tokens, err := service.NewTokenService(config.AuthConfig{
		JWTSecret:    "handler-test-secret",
		JWTAlgorithm: "HS256",
		AccessTTL:    30 * time.Minute,
	}, nil)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	return NewRouter(config.ServerConfig{
		APIPrefix:            testPrefix,
		CORSAllowedOrigins:   []string{"*"},
		CORSAllowCredentials: true,
	}, Services{
		Auth:  service.NewAuthService(store, service.NewBcryptHasher(bcrypt.MinCost), tokens, nil),
		Tasks: service.NewTaskService(store, nil),
	}, nil)
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doLogin(t *testing.T, r http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, testPrefix+"/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r http.Handler, username, password string) model.User {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, testPrefix+"/register", "", model.RegisterRequest{Username: username, Password: password})
	if w.Code != http.StatusOK {
		t.Fatalf("register %s: status %d body %s", username, w.Code, w.Body.String())
	}
	var user model.User
	decode(t, w, &user)
	return user
}

func login(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()
	w := doLogin(t, r, url.Values{"username": {username}, "password": {password}})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", username, w.Code, w.Body.String())
	}
	var token model.Token
	decode(t, w, &token)
	return token.AccessToken
}

func createTask(t *testing.T, r http.Handler, token, description string) model.Task {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, testPrefix+"/tasks", token, model.CreateTaskRequest{Description: description})
	if w.Code != http.StatusOK {
		t.Fatalf("create task: status %d body %s", w.Code, w.Body.String())
	}
	var task model.Task
	decode(t, w, &task)
	return task
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, detail string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	var body model.ErrorResponse
	decode(t, w, &body)
	if detail != "" && body.Detail != detail {
		t.Fatalf("detail = %q, want %q", body.Detail, detail)
	}
}
