package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestCORSMiddleware はCORSヘッダーの付与を検証する。
func TestCORSMiddleware(t *testing.T) {
	t.Run("許可オリジンがヘッダーに設定される", func(t *testing.T) {
		mw := NewCORSMiddleware("http://localhost:3000")
		handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Allow-Origin = %q, want %q", got, "http://localhost:3000")
		}
		if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("Allow-Credentials = %q, want %q", got, "true")
		}
	})

	t.Run("Authorizationヘッダーが許可リストに含まれる", func(t *testing.T) {
		mw := NewCORSMiddleware("http://localhost:3000")
		handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodOptions, "/api/user", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		allowHeaders := rec.Header().Get("Access-Control-Allow-Headers")
		if allowHeaders != "Content-Type, Authorization" {
			t.Errorf("Allow-Headers = %q, want %q", allowHeaders, "Content-Type, Authorization")
		}
	})

	t.Run("OPTIONSプリフライトは204で終了する", func(t *testing.T) {
		mw := NewCORSMiddleware("http://localhost:3000")
		called := false
		handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest(http.MethodOptions, "/api/articles", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
		}
		if called {
			t.Error("プリフライトが後続ハンドラーに到達した")
		}
	})
}
