package favorite

import (
	"context"
	"testing"
)

// エッジを保持するインメモリのお気に入りリポジトリ。冪等性とカウントの検証に使用する。
type memoryFavoriteRepo struct {
	edges map[[2]string]bool
	order [][2]string
}

func newMemoryFavoriteRepo() *memoryFavoriteRepo {
	return &memoryFavoriteRepo{edges: map[[2]string]bool{}}
}
func (m *memoryFavoriteRepo) Create(ctx context.Context, userID, articleID string) error {
	key := [2]string{userID, articleID}
	if !m.edges[key] {
		m.edges[key] = true
		m.order = append(m.order, key)
	}
	return nil
}
func (m *memoryFavoriteRepo) Delete(ctx context.Context, userID, articleID string) error {
	delete(m.edges, [2]string{userID, articleID})
	return nil
}
func (m *memoryFavoriteRepo) Exists(ctx context.Context, userID, articleID string) (bool, error) {
	return m.edges[[2]string{userID, articleID}], nil
}
func (m *memoryFavoriteRepo) CountByArticleID(ctx context.Context, articleID string) (int, error) {
	count := 0
	for key, ok := range m.edges {
		if ok && key[1] == articleID {
			count++
		}
	}
	return count, nil
}
func (m *memoryFavoriteRepo) ListArticleIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	for _, key := range m.order {
		if m.edges[key] && key[0] == userID {
			ids = append(ids, key[1])
		}
	}
	return ids, nil
}

// --- テスト ---

// お気に入り登録・解除の往復でIsFavoritedが変化することを検証
func TestService_FavoriteUnfavoriteRoundTrip(t *testing.T) {
	svc := NewService(newMemoryFavoriteRepo())
	ctx := context.Background()

	if err := svc.Favorite(ctx, "user-1", "article-1"); err != nil {
		t.Fatalf("Favorite returned error: %v", err)
	}
	favorited, err := svc.IsFavorited(ctx, "user-1", "article-1")
	if err != nil {
		t.Fatalf("IsFavorited returned error: %v", err)
	}
	if !favorited {
		t.Error("IsFavorited should be true after Favorite")
	}

	if err := svc.Unfavorite(ctx, "user-1", "article-1"); err != nil {
		t.Fatalf("Unfavorite returned error: %v", err)
	}
	favorited, err = svc.IsFavorited(ctx, "user-1", "article-1")
	if err != nil {
		t.Fatalf("IsFavorited returned error: %v", err)
	}
	if favorited {
		t.Error("IsFavorited should be false after Unfavorite")
	}
}

// 同一ユーザーの重複お気に入りでカウントが1のままであることを検証
func TestService_Favorite_Idempotent_NoDoubleCount(t *testing.T) {
	svc := NewService(newMemoryFavoriteRepo())
	ctx := context.Background()

	if err := svc.Favorite(ctx, "user-1", "article-1"); err != nil {
		t.Fatalf("first Favorite returned error: %v", err)
	}
	if err := svc.Favorite(ctx, "user-1", "article-1"); err != nil {
		t.Errorf("second Favorite should be a no-op, got error: %v", err)
	}

	count, err := svc.Count(ctx, "article-1")
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 (a single user's favorite must not double-count)", count)
	}
}

// 存在しないエッジの解除が成功扱いになることを検証（冪等削除）
func TestService_Unfavorite_NoEdge_Idempotent(t *testing.T) {
	svc := NewService(newMemoryFavoriteRepo())

	if err := svc.Unfavorite(context.Background(), "user-1", "article-1"); err != nil {
		t.Errorf("Unfavorite without an edge should succeed, got error: %v", err)
	}
}

// 複数ユーザーのお気に入りが正しく集計されることを検証
func TestService_Count_MultipleUsers(t *testing.T) {
	svc := NewService(newMemoryFavoriteRepo())
	ctx := context.Background()

	for _, userID := range []string{"user-1", "user-2", "user-3"} {
		if err := svc.Favorite(ctx, userID, "article-1"); err != nil {
			t.Fatalf("Favorite(%s) returned error: %v", userID, err)
		}
	}

	count, err := svc.Count(ctx, "article-1")
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

// お気に入り記事ID一覧が登録した記事を返すことを検証
func TestService_ListFavoritedArticleIDs(t *testing.T) {
	svc := NewService(newMemoryFavoriteRepo())
	ctx := context.Background()

	if err := svc.Favorite(ctx, "user-1", "article-1"); err != nil {
		t.Fatalf("Favorite returned error: %v", err)
	}
	if err := svc.Favorite(ctx, "user-1", "article-2"); err != nil {
		t.Fatalf("Favorite returned error: %v", err)
	}
	if err := svc.Favorite(ctx, "user-2", "article-3"); err != nil {
		t.Fatalf("Favorite returned error: %v", err)
	}

	ids, err := svc.ListFavoritedArticleIDs(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListFavoritedArticleIDs returned error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("len(ids) = %d, want 2", len(ids))
	}
	if ids[0] != "article-1" || ids[1] != "article-2" {
		t.Errorf("ids = %v, want [article-1 article-2]", ids)
	}
}
