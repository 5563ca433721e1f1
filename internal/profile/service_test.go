package profile

import (
	"context"
	"testing"

	"github.com/hitoshi/conduit/internal/model"
)

// --- モック ---

type mockUserFinder struct {
	findByUsernameFn func(ctx context.Context, username string) (*model.User, error)
}

func (m *mockUserFinder) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return nil, model.NewUserNotFoundError(username)
}

type mockFollowGraph struct {
	followFn      func(ctx context.Context, followerID, followeeID string) error
	unfollowFn    func(ctx context.Context, followerID, followeeID string) error
	isFollowingFn func(ctx context.Context, followerID, followeeID string) (bool, error)
}

func (m *mockFollowGraph) Follow(ctx context.Context, followerID, followeeID string) error {
	if m.followFn != nil {
		return m.followFn(ctx, followerID, followeeID)
	}
	return nil
}
func (m *mockFollowGraph) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if m.unfollowFn != nil {
		return m.unfollowFn(ctx, followerID, followeeID)
	}
	return nil
}
func (m *mockFollowGraph) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	if m.isFollowingFn != nil {
		return m.isFollowingFn(ctx, followerID, followeeID)
	}
	return false, nil
}

func strPtr(s string) *string { return &s }

// --- テスト ---

// 匿名の閲覧者ではフォローグラフの状態に関わらずfollowingがfalseになることを検証
func TestService_Compose_AnonymousViewer_AlwaysNotFollowing(t *testing.T) {
	graph := &mockFollowGraph{
		isFollowingFn: func(ctx context.Context, followerID, followeeID string) (bool, error) {
			t.Error("IsFollowing should not be consulted for an anonymous viewer")
			return true, nil
		},
	}
	svc := NewService(&mockUserFinder{}, graph)

	subject := &model.User{ID: "user-b", Username: "author"}
	p, err := svc.Compose(context.Background(), subject, nil)
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if p.Following {
		t.Error("following must be false for an anonymous viewer")
	}
}

// 認証済み閲覧者のfollowingがフォローグラフから計算されることを検証
func TestService_Compose_AuthenticatedViewer(t *testing.T) {
	graph := &mockFollowGraph{
		isFollowingFn: func(ctx context.Context, followerID, followeeID string) (bool, error) {
			if followerID != "user-a" || followeeID != "user-b" {
				t.Errorf("IsFollowing(%q, %q), want (user-a, user-b)", followerID, followeeID)
			}
			return true, nil
		},
	}
	svc := NewService(&mockUserFinder{}, graph)

	subject := &model.User{ID: "user-b", Username: "author", Bio: strPtr("bio")}
	p, err := svc.Compose(context.Background(), subject, strPtr("user-a"))
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if !p.Following {
		t.Error("following should be true when the edge exists")
	}
	if p.Username != "author" {
		t.Errorf("username = %q, want %q", p.Username, "author")
	}
	if p.Bio == nil || *p.Bio != "bio" {
		t.Errorf("bio = %v, want bio", p.Bio)
	}
}

// ユーザー名での表示が対象を解決してプロフィールを返すことを検証
func TestService_ShowByUsername(t *testing.T) {
	finder := &mockUserFinder{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: "user-b", Username: username}, nil
		},
	}
	svc := NewService(finder, &mockFollowGraph{})

	p, err := svc.ShowByUsername(context.Background(), "author", nil)
	if err != nil {
		t.Fatalf("ShowByUsername returned error: %v", err)
	}
	if p.Username != "author" {
		t.Errorf("username = %q, want %q", p.Username, "author")
	}
}

// 存在しないユーザー名でUSER_NOT_FOUNDが伝播することを検証
func TestService_ShowByUsername_NotFound(t *testing.T) {
	svc := NewService(&mockUserFinder{}, &mockFollowGraph{})

	_, err := svc.ShowByUsername(context.Background(), "nobody", nil)
	if model.CodeOf(err) != model.ErrCodeUserNotFound {
		t.Errorf("code = %q, want %q", model.CodeOf(err), model.ErrCodeUserNotFound)
	}
}

// フォロー操作が対象を解決し、following=trueのプロフィールを返すことを検証
func TestService_FollowByUsername(t *testing.T) {
	followCalled := false
	finder := &mockUserFinder{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: "user-b", Username: username}, nil
		},
	}
	graph := &mockFollowGraph{
		followFn: func(ctx context.Context, followerID, followeeID string) error {
			followCalled = true
			if followerID != "user-a" || followeeID != "user-b" {
				t.Errorf("Follow(%q, %q), want (user-a, user-b)", followerID, followeeID)
			}
			return nil
		},
	}
	svc := NewService(finder, graph)

	p, err := svc.FollowByUsername(context.Background(), "user-a", "author")
	if err != nil {
		t.Fatalf("FollowByUsername returned error: %v", err)
	}
	if !followCalled {
		t.Error("expected Follow to be called")
	}
	if !p.Following {
		t.Error("profile should report following=true after a follow")
	}
}

// アンフォロー操作がfollowing=falseのプロフィールを返すことを検証
func TestService_UnfollowByUsername(t *testing.T) {
	finder := &mockUserFinder{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: "user-b", Username: username}, nil
		},
	}
	svc := NewService(finder, &mockFollowGraph{})

	p, err := svc.UnfollowByUsername(context.Background(), "user-a", "author")
	if err != nil {
		t.Fatalf("UnfollowByUsername returned error: %v", err)
	}
	if p.Following {
		t.Error("profile should report following=false after an unfollow")
	}
}

// 自己フォロー拒否がフォローグラフから伝播することを検証
func TestService_FollowByUsername_SelfFollowPropagates(t *testing.T) {
	finder := &mockUserFinder{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: "user-a", Username: username}, nil
		},
	}
	graph := &mockFollowGraph{
		followFn: func(ctx context.Context, followerID, followeeID string) error {
			return model.NewSelfFollowError()
		},
	}
	svc := NewService(finder, graph)

	_, err := svc.FollowByUsername(context.Background(), "user-a", "me")
	if model.CodeOf(err) != model.ErrCodeSelfFollow {
		t.Errorf("code = %q, want %q", model.CodeOf(err), model.ErrCodeSelfFollow)
	}
}
