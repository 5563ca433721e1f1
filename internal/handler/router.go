package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/conduit/internal/metrics"
	"github.com/hitoshi/conduit/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	RequestTimeout    time.Duration

	// ユーザー
	UserService UserServiceInterface
	TokenIssuer TokenIssuer

	// プロフィール
	ProfileService ProfileServiceInterface

	// 記事
	ArticleService ArticleServiceInterface

	// タグ
	TagService TagServiceInterface

	// メトリクス（nilの場合は収集しない）
	Metrics        metrics.MetricsCollector
	MetricsHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → SecurityHeaders → Metrics → RequestTimeout → CORS → (Auth | OptionalAuth) → RateLimit
//
// 読み取り系ルートは任意認証、書き込み系ルートは必須認証とする。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(slog.Default()))
	r.Use(middleware.NewSecurityHeadersMiddleware())

	if deps.Metrics != nil {
		r.Use(metrics.Middleware(deps.Metrics))
	}

	if deps.RequestTimeout > 0 {
		r.Use(middleware.NewRequestTimeoutMiddleware(deps.RequestTimeout))
	}

	// CORS ミドルウェアを最上位に適用（全ルートに効く）
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	userHandler := NewUserHandler(deps.UserService, deps.TokenIssuer)
	profileHandler := NewProfileHandler(deps.ProfileService)
	articleHandler := NewArticleHandler(deps.ArticleService)
	tagHandler := NewTagHandler(deps.TagService)

	if deps.Metrics != nil {
		userHandler.SetMetrics(deps.Metrics)
		articleHandler.SetMetrics(deps.Metrics)
	}

	requiredAuth := middleware.NewAuthMiddleware(deps.TokenVerifier)
	optionalAuth := middleware.NewOptionalAuthMiddleware(deps.TokenVerifier)

	// --- 認証不要のルート ---

	// ヘルスチェック
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Prometheusスクレイプ
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// アカウント登録（登録専用レート制限を追加）・ログイン
	r.With(deps.RateLimiter.SignupMiddleware()).Post("/api/users", userHandler.Signup)
	r.Post("/api/users/login", userHandler.Signin)

	// --- 任意認証の読み取りルート ---
	// トークンが提示された場合のみ閲覧者相対になる
	r.Group(func(r chi.Router) {
		r.Use(optionalAuth)

		r.Get("/api/articles", articleHandler.List)
		r.Get("/api/articles/{slug}", articleHandler.Get)
		r.Get("/api/profiles/{username}", profileHandler.Show)
		r.Get("/api/tags", tagHandler.List)
	})

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(requiredAuth)
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// 認証済みユーザー自身
		r.Route("/api/user", func(r chi.Router) {
			r.Get("/", userHandler.Me)
			r.Put("/", userHandler.Update)
		})

		// フォローグラフ
		r.Route("/api/profiles/{username}/follow", func(r chi.Router) {
			r.Post("/", profileHandler.Follow)
			r.Delete("/", profileHandler.Unfollow)
		})

		// 記事の作成・お気に入り
		r.Post("/api/articles", articleHandler.Create)
		r.Route("/api/articles/{slug}/favorite", func(r chi.Router) {
			r.Post("/", articleHandler.Favorite)
			r.Delete("/", articleHandler.Unfavorite)
		})
	})

	return r
}
