package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/conduit/internal/model"
)

// TagServiceInterface はタグハンドラーが必要とするサービスインターフェース。
type TagServiceInterface interface {
	// ListRecent は新しい順にタグをlimit件まで返す。
	ListRecent(ctx context.Context, limit int) ([]model.Tag, error)
}

// TagHandler はタグのHTTPハンドラー。
type TagHandler struct {
	service TagServiceInterface
}

// NewTagHandler はTagHandlerを生成する。
func NewTagHandler(service TagServiceInterface) *TagHandler {
	return &TagHandler{
		service: service,
	}
}

// tagsEnvelope はタグ一覧レスポンスのエンベロープ。
type tagsEnvelope struct {
	Tags []string `json:"tags"`
}

// List は最近使われたタグの名前一覧を返す。匿名でも閲覧できる。
// GET /api/tags
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.ListRecent(r.Context(), 0)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}

	writeJSON(w, http.StatusOK, tagsEnvelope{Tags: names})
}

// SetupTagRoutes はタグ関連のルーティングを設定したchi.Routerを返す。
func SetupTagRoutes(service TagServiceInterface) http.Handler {
	r := chi.NewRouter()
	h := NewTagHandler(service)

	r.Get("/api/tags", h.List)

	return r
}
