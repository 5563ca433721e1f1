package repository

import (
	"context"
	"database/sql"
	"time"
)

// PostgresFollowRepo はPostgreSQLを使用したフォローエッジリポジトリ。
type PostgresFollowRepo struct {
	db *sql.DB
}

// NewPostgresFollowRepo はPostgresFollowRepoを生成する。
func NewPostgresFollowRepo(db *sql.DB) *PostgresFollowRepo {
	return &PostgresFollowRepo{db: db}
}

// Create はフォローエッジを作成する。
// 一意制約に対するON CONFLICT DO NOTHINGにより、既存エッジへの再作成は冪等に成功する。
// 存在確認と挿入の間の競合はストレージの一意制約で閉じられる。
func (r *PostgresFollowRepo) Create(ctx context.Context, followerID, followeeID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO follows (follower_id, followee_id, created_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		followerID, followeeID, time.Now(),
	)
	if err != nil {
		return classifyError(err, "フォローエッジの作成に失敗しました")
	}
	return nil
}

// Delete はフォローエッジを削除する。該当エッジが存在しない場合も成功扱い（冪等）。
func (r *PostgresFollowRepo) Delete(ctx context.Context, followerID, followeeID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID,
	)
	if err != nil {
		return classifyError(err, "フォローエッジの削除に失敗しました")
	}
	return nil
}

// Exists はフォローエッジの存在を確認する。
func (r *PostgresFollowRepo) Exists(ctx context.Context, followerID, followeeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(
		     SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2
		 )`,
		followerID, followeeID,
	).Scan(&exists)
	if err != nil {
		return false, classifyError(err, "フォローエッジの存在確認に失敗しました")
	}
	return exists, nil
}

// compile-time interface check
var _ FollowRepository = (*PostgresFollowRepo)(nil)
