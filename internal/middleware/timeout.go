package middleware

import (
	"context"
	"net/http"
	"time"
)

// NewRequestTimeoutMiddleware はリクエストコンテキストに期限を設定するミドルウェアを返す。
// コネクションプールの枯渇時、取得待ちはこの期限で打ち切られ、
// リポジトリ層でPOOL_TIMEOUTとして分類される。
func NewRequestTimeoutMiddleware(timeout time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
