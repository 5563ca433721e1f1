package repository

import (
	"testing"
)

// 各Postgresリポジトリが対応するインターフェースを満たすことを検証
func TestPostgresRepos_ImplementInterfaces(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
	var _ FollowRepository = (*PostgresFollowRepo)(nil)
	var _ FavoriteRepository = (*PostgresFavoriteRepo)(nil)
	var _ TagRepository = (*PostgresTagRepo)(nil)
	var _ ArticleRepository = (*PostgresArticleRepo)(nil)
}

// 各コンストラクタが正しく初期化されることを検証
func TestNewPostgresRepos_Initialize(t *testing.T) {
	if NewPostgresUserRepo(nil) == nil {
		t.Error("expected non-nil user repo")
	}
	if NewPostgresFollowRepo(nil) == nil {
		t.Error("expected non-nil follow repo")
	}
	if NewPostgresFavoriteRepo(nil) == nil {
		t.Error("expected non-nil favorite repo")
	}
	if NewPostgresTagRepo(nil) == nil {
		t.Error("expected non-nil tag repo")
	}
	if NewPostgresArticleRepo(nil) == nil {
		t.Error("expected non-nil article repo")
	}
}
