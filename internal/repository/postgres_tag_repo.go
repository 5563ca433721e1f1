package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hitoshi/conduit/internal/model"
)

// PostgresTagRepo はPostgreSQLを使用したタグリポジトリ。
type PostgresTagRepo struct {
	db *sql.DB
}

// NewPostgresTagRepo はPostgresTagRepoを生成する。
func NewPostgresTagRepo(db *sql.DB) *PostgresTagRepo {
	return &PostgresTagRepo{db: db}
}

// CreateBulk は複数のタグを1文のマルチVALUES INSERTで一括作成する。
// 空の入力では何もしない。挿入順はcreated_atで再現される（サービス層が単調に採番する）。
func (r *PostgresTagRepo) CreateBulk(ctx context.Context, tags []model.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(tags))
	args := make([]any, 0, len(tags)*5)
	for i, tag := range tags {
		base := i * 5
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5))
		args = append(args, tag.ID, tag.ArticleID, tag.Name, tag.CreatedAt, tag.UpdatedAt)
	}

	query := `INSERT INTO tags (id, article_id, name, created_at, updated_at) VALUES ` +
		strings.Join(placeholders, ", ")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classifyError(err, "タグの一括作成に失敗しました")
	}
	return nil
}

// ListByArticleID は記事のタグ一覧を作成時刻の昇順（挿入順）で返す。
func (r *PostgresTagRepo) ListByArticleID(ctx context.Context, articleID string) ([]model.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, article_id, name, created_at, updated_at
		 FROM tags WHERE article_id = $1 ORDER BY created_at ASC`,
		articleID,
	)
	if err != nil {
		return nil, classifyError(err, "記事タグ一覧の取得に失敗しました")
	}
	defer rows.Close()

	return scanTags(rows)
}

// ListRecent は全記事のタグを作成時刻の降順でlimit件まで返す。
func (r *PostgresTagRepo) ListRecent(ctx context.Context, limit int) ([]model.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, article_id, name, created_at, updated_at
		 FROM tags ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, classifyError(err, "最新タグ一覧の取得に失敗しました")
	}
	defer rows.Close()

	return scanTags(rows)
}

func scanTags(rows *sql.Rows) ([]model.Tag, error) {
	var tags []model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.ArticleID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt); err != nil {
			return nil, classifyError(err, "タグ行の読み取りに失敗しました")
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "タグ一覧の走査に失敗しました")
	}
	return tags, nil
}

// compile-time interface check
var _ TagRepository = (*PostgresTagRepo)(nil)
