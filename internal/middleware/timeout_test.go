package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestRequestTimeoutMiddleware_SetsDeadline はリクエストコンテキストに期限が設定されることを検証する。
func TestRequestTimeoutMiddleware_SetsDeadline(t *testing.T) {
	var deadlineSet bool
	handler := NewRequestTimeoutMiddleware(5*time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, deadlineSet = r.Context().Deadline()
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if !deadlineSet {
		t.Error("request context should have a deadline")
	}
}

// TestRequestTimeoutMiddleware_ExpiredContext は期限超過後にコンテキストがキャンセルされることを検証する。
func TestRequestTimeoutMiddleware_ExpiredContext(t *testing.T) {
	var ctxErr error
	handler := NewRequestTimeoutMiddleware(time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		ctxErr = r.Context().Err()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if ctxErr == nil {
		t.Fatal("context should be cancelled after deadline")
	}
}
