package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/conduit/internal/model"
)

// mockTagService はTagServiceInterfaceのモック実装。
type mockTagService struct {
	listRecentFn func(ctx context.Context, limit int) ([]model.Tag, error)
}

func (m *mockTagService) ListRecent(ctx context.Context, limit int) ([]model.Tag, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, limit)
	}
	return []model.Tag{}, nil
}

// --- GET /api/tags テスト ---

func TestTagHandler_List_Success(t *testing.T) {
	svc := &mockTagService{
		listRecentFn: func(ctx context.Context, limit int) ([]model.Tag, error) {
			return []model.Tag{
				{ID: "t1", Name: "go"},
				{ID: "t2", Name: "web"},
			}, nil
		},
	}

	h := NewTagHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var envelope tagsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("レスポンスの解析に失敗: %v", err)
	}
	if len(envelope.Tags) != 2 || envelope.Tags[0] != "go" || envelope.Tags[1] != "web" {
		t.Errorf("tags = %v, want [go web]", envelope.Tags)
	}
}

func TestTagHandler_List_Empty(t *testing.T) {
	h := NewTagHandler(&mockTagService{})

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	var envelope tagsEnvelope
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("レスポンスの解析に失敗: %v", err)
	}
	if envelope.Tags == nil {
		t.Error("tags = null, want []")
	}
	if len(envelope.Tags) != 0 {
		t.Errorf("tags = %v, want []", envelope.Tags)
	}
}

func TestTagHandler_List_InternalError(t *testing.T) {
	svc := &mockTagService{
		listRecentFn: func(ctx context.Context, limit int) ([]model.Tag, error) {
			return nil, errors.New("connection refused")
		},
	}

	h := NewTagHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

// --- ルーティングテスト ---

func TestSetupTagRoutes_ListEndpoint(t *testing.T) {
	router := SetupTagRoutes(&mockTagService{})

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("GET /api/tags status = %d, want %d", w.Code, http.StatusOK)
	}
}
