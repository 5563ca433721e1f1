package repository

import (
	"context"
	"database/sql"
	"time"
)

// PostgresFavoriteRepo はPostgreSQLを使用したお気に入りエッジリポジトリ。
type PostgresFavoriteRepo struct {
	db *sql.DB
}

// NewPostgresFavoriteRepo はPostgresFavoriteRepoを生成する。
func NewPostgresFavoriteRepo(db *sql.DB) *PostgresFavoriteRepo {
	return &PostgresFavoriteRepo{db: db}
}

// Create はお気に入りエッジを作成する。
// フォローエッジと同じ規約で、既存エッジへの再作成は冪等に成功する。
func (r *PostgresFavoriteRepo) Create(ctx context.Context, userID, articleID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (user_id, article_id, created_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, article_id) DO NOTHING`,
		userID, articleID, time.Now(),
	)
	if err != nil {
		return classifyError(err, "お気に入りエッジの作成に失敗しました")
	}
	return nil
}

// Delete はお気に入りエッジを削除する。該当エッジが存在しない場合も成功扱い（冪等）。
func (r *PostgresFavoriteRepo) Delete(ctx context.Context, userID, articleID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND article_id = $2`,
		userID, articleID,
	)
	if err != nil {
		return classifyError(err, "お気に入りエッジの削除に失敗しました")
	}
	return nil
}

// Exists はお気に入りエッジの存在を確認する。
func (r *PostgresFavoriteRepo) Exists(ctx context.Context, userID, articleID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(
		     SELECT 1 FROM favorites WHERE user_id = $1 AND article_id = $2
		 )`,
		userID, articleID,
	).Scan(&exists)
	if err != nil {
		return false, classifyError(err, "お気に入りエッジの存在確認に失敗しました")
	}
	return exists, nil
}

// CountByArticleID は記事のお気に入り数を返す。
func (r *PostgresFavoriteRepo) CountByArticleID(ctx context.Context, articleID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE article_id = $1`,
		articleID,
	).Scan(&count)
	if err != nil {
		return 0, classifyError(err, "お気に入り数の取得に失敗しました")
	}
	return count, nil
}

// ListArticleIDsByUserID はユーザーがお気に入りした記事IDの一覧を返す。
func (r *PostgresFavoriteRepo) ListArticleIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT article_id FROM favorites WHERE user_id = $1 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, classifyError(err, "お気に入り記事ID一覧の取得に失敗しました")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, classifyError(err, "お気に入り行の読み取りに失敗しました")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "お気に入り一覧の走査に失敗しました")
	}
	return ids, nil
}

// compile-time interface check
var _ FavoriteRepository = (*PostgresFavoriteRepo)(nil)
