// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/conduit/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByUsername はユーザー名でユーザーを検索する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// Create はユーザーを作成する。
	// email・usernameの一意制約違反はDUPLICATE_EMAIL / DUPLICATE_USERNAMEとして返す。
	Create(ctx context.Context, user *model.User) error

	// Update はユーザーの全カラムをIDで上書き更新する。
	// 同時更新はストレージ層でlast-write-winsとなる。
	Update(ctx context.Context, user *model.User) error
}

// FollowRepository はフォローエッジの永続化インターフェース。
type FollowRepository interface {
	// Create はフォローエッジを作成する。既存エッジに対しては何もしない（冪等）。
	Create(ctx context.Context, followerID, followeeID string) error

	// Delete はフォローエッジを削除する。該当エッジが存在しない場合も成功扱い（冪等）。
	Delete(ctx context.Context, followerID, followeeID string) error

	// Exists はフォローエッジの存在を確認する。
	Exists(ctx context.Context, followerID, followeeID string) (bool, error)
}

// FavoriteRepository はお気に入りエッジの永続化インターフェース。
type FavoriteRepository interface {
	// Create はお気に入りエッジを作成する。既存エッジに対しては何もしない（冪等）。
	Create(ctx context.Context, userID, articleID string) error

	// Delete はお気に入りエッジを削除する。該当エッジが存在しない場合も成功扱い（冪等）。
	Delete(ctx context.Context, userID, articleID string) error

	// Exists はお気に入りエッジの存在を確認する。
	Exists(ctx context.Context, userID, articleID string) (bool, error)

	// CountByArticleID は記事のお気に入り数を返す。
	// 一意制約により同一ユーザーの重複カウントは発生しない。
	CountByArticleID(ctx context.Context, articleID string) (int, error)

	// ListArticleIDsByUserID はユーザーがお気に入りした記事IDの一覧を返す。
	ListArticleIDsByUserID(ctx context.Context, userID string) ([]string, error)
}

// TagRepository はタグデータの永続化インターフェース。
type TagRepository interface {
	// CreateBulk は複数のタグを一括作成する。空の入力では何もしない。
	CreateBulk(ctx context.Context, tags []model.Tag) error

	// ListByArticleID は記事のタグ一覧を作成時刻の昇順（挿入順）で返す。
	ListByArticleID(ctx context.Context, articleID string) ([]model.Tag, error)

	// ListRecent は全記事のタグを作成時刻の降順でlimit件まで返す。
	ListRecent(ctx context.Context, limit int) ([]model.Tag, error)
}

// ArticleRepository は記事データの永続化インターフェース。
type ArticleRepository interface {
	// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Article, error)

	// FindBySlug はスラッグで記事を検索する。見つからない場合はnilを返す。
	FindBySlug(ctx context.Context, slug string) (*model.Article, error)

	// Create は記事を作成する。
	Create(ctx context.Context, article *model.Article) error

	// ListRecent は記事を作成時刻の降順でlimit件まで返す。
	ListRecent(ctx context.Context, limit int) ([]*model.Article, error)
}
