package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/conduit/internal/metrics"
	"github.com/hitoshi/conduit/internal/middleware"
	"github.com/hitoshi/conduit/internal/model"
)

// ArticleServiceInterface は記事ハンドラーが必要とするサービスインターフェース。
type ArticleServiceInterface interface {
	// Create は新規記事を作成し、合成済みの読み取りモデルを返す。
	Create(ctx context.Context, authorID, title, description, body string, tagNames []string) (*model.ArticleDetail, error)
	// GetBySlug はスラッグで記事を取得する。
	GetBySlug(ctx context.Context, slug string, viewerID *string) (*model.ArticleDetail, error)
	// List は最新の記事一覧を返す。
	List(ctx context.Context, viewerID *string, limit int) ([]*model.ArticleDetail, error)
	// FavoriteBySlug は記事をお気に入りに登録する。
	FavoriteBySlug(ctx context.Context, viewerID, slug string) (*model.ArticleDetail, error)
	// UnfavoriteBySlug は記事のお気に入りを解除する。
	UnfavoriteBySlug(ctx context.Context, viewerID, slug string) (*model.ArticleDetail, error)
}

// ArticleHandler は記事管理のHTTPハンドラー。
type ArticleHandler struct {
	service ArticleServiceInterface
	metrics metrics.MetricsCollector
}

// NewArticleHandler はArticleHandlerを生成する。
func NewArticleHandler(service ArticleServiceInterface) *ArticleHandler {
	return &ArticleHandler{
		service: service,
	}
}

// SetMetrics はビジネスメトリクスのコレクターを設定する。
// 未設定の場合は収集しない。
func (h *ArticleHandler) SetMetrics(collector metrics.MetricsCollector) {
	h.metrics = collector
}

// createArticleRequest は記事作成リクエストのボディ。
type createArticleRequest struct {
	Article struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Body        string   `json:"body"`
		TagList     []string `json:"tagList"`
	} `json:"article"`
}

// articleBody は記事のAPIレスポンス。
type articleBody struct {
	Slug           string      `json:"slug"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Body           string      `json:"body"`
	TagList        []string    `json:"tagList"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Favorited      bool        `json:"favorited"`
	FavoritesCount int         `json:"favoritesCount"`
	Author         profileBody `json:"author"`
}

// articleEnvelope は単一記事レスポンスのエンベロープ。
type articleEnvelope struct {
	Article articleBody `json:"article"`
}

// articlesEnvelope は記事一覧レスポンスのエンベロープ。
type articlesEnvelope struct {
	Articles      []articleBody `json:"articles"`
	ArticlesCount int           `json:"articlesCount"`
}

// Create は記事の作成を処理する。
// POST /api/articles
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	authorID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req createArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	detail, err := h.service.Create(r.Context(), authorID, req.Article.Title, req.Article.Description, req.Article.Body, req.Article.TagList)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordArticleCreated()
	}

	writeJSON(w, http.StatusCreated, toArticleEnvelope(detail))
}

// Get はスラッグ指定で記事を取得する。匿名でも閲覧できる。
// GET /api/articles/{slug}
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	viewerID := middleware.OptionalUserIDFromContext(r.Context())

	detail, err := h.service.GetBySlug(r.Context(), slug, viewerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toArticleEnvelope(detail))
}

// List は最新の記事一覧を返す。匿名でも閲覧できる。
// GET /api/articles?limit=20
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.OptionalUserIDFromContext(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("limitは0以上の整数で指定してください"))
			return
		}
		limit = parsed
	}

	details, err := h.service.List(r.Context(), viewerID, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	articles := make([]articleBody, len(details))
	for i, detail := range details {
		articles[i] = toArticleBody(detail)
	}

	writeJSON(w, http.StatusOK, articlesEnvelope{
		Articles:      articles,
		ArticlesCount: len(articles),
	})
}

// Favorite は記事をお気に入りに登録する。
// POST /api/articles/{slug}/favorite
func (h *ArticleHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	viewerID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	slug := chi.URLParam(r, "slug")

	detail, err := h.service.FavoriteBySlug(r.Context(), viewerID, slug)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordFavorite()
	}

	writeJSON(w, http.StatusOK, toArticleEnvelope(detail))
}

// Unfavorite は記事のお気に入りを解除する。
// DELETE /api/articles/{slug}/favorite
func (h *ArticleHandler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	viewerID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	slug := chi.URLParam(r, "slug")

	detail, err := h.service.UnfavoriteBySlug(r.Context(), viewerID, slug)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toArticleEnvelope(detail))
}

// SetupArticleRoutes は記事関連のルーティングを設定したchi.Routerを返す。
func SetupArticleRoutes(service ArticleServiceInterface, optionalAuth, requiredAuth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	h := NewArticleHandler(service)

	r.Route("/api/articles", func(r chi.Router) {
		if optionalAuth != nil {
			r.With(optionalAuth).Get("/", h.List)
			r.With(optionalAuth).Get("/{slug}", h.Get)
		} else {
			r.Get("/", h.List)
			r.Get("/{slug}", h.Get)
		}

		r.Group(func(r chi.Router) {
			if requiredAuth != nil {
				r.Use(requiredAuth)
			}
			r.Post("/", h.Create)
			r.Post("/{slug}/favorite", h.Favorite)
			r.Delete("/{slug}/favorite", h.Unfavorite)
		})
	})

	return r
}

// toArticleBody はArticleDetailからAPIレスポンスに変換する。
func toArticleBody(detail *model.ArticleDetail) articleBody {
	tagList := make([]string, len(detail.Tags))
	for i, tag := range detail.Tags {
		tagList[i] = tag.Name
	}

	return articleBody{
		Slug:           detail.Article.Slug,
		Title:          detail.Article.Title,
		Description:    detail.Article.Description,
		Body:           detail.Article.Body,
		TagList:        tagList,
		CreatedAt:      detail.Article.CreatedAt,
		UpdatedAt:      detail.Article.UpdatedAt,
		Favorited:      detail.Favorite.Favorited,
		FavoritesCount: detail.Favorite.FavoritesCount,
		Author: profileBody{
			Username:  detail.Author.Username,
			Bio:       detail.Author.Bio,
			Image:     detail.Author.Image,
			Following: detail.Author.Following,
		},
	}
}

// toArticleEnvelope はArticleDetailから単一記事エンベロープに変換する。
func toArticleEnvelope(detail *model.ArticleDetail) articleEnvelope {
	return articleEnvelope{Article: toArticleBody(detail)}
}
