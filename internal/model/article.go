// Package model はドメインモデルを定義する。
package model

import "time"

// Article は投稿記事を表す。
type Article struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Body        string
	AuthorID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tag は記事に付与されたタグを表す。
// タグは1つの記事にのみ属し、記事間で共有されない。
type Tag struct {
	ID        string
	ArticleID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FavoriteEdge はユーザーと記事のお気に入り関係を表す。
// (user_id, article_id)の組はストレージの一意制約で高々1行に保たれる。
type FavoriteEdge struct {
	UserID    string
	ArticleID string
	CreatedAt time.Time
}

// FavoriteInfo は記事のお気に入り集計を表す。
// Favoritedは閲覧者ごとに読み取り時に計算される。
type FavoriteInfo struct {
	Favorited      bool
	FavoritesCount int
}

// ArticleDetail は記事にタグ・お気に入り情報・著者プロフィールを
// 結合した読み取りモデル。部分的に構築された状態で外部に公開されることはない。
type ArticleDetail struct {
	Article  Article
	Author   Profile
	Favorite FavoriteInfo
	Tags     []Tag
}
