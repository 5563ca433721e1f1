package repository

import (
	"context"
	"database/sql"

	"github.com/hitoshi/conduit/internal/model"
)

// PostgresArticleRepo はPostgreSQLを使用した記事リポジトリ。
type PostgresArticleRepo struct {
	db *sql.DB
}

// NewPostgresArticleRepo はPostgresArticleRepoを生成する。
func NewPostgresArticleRepo(db *sql.DB) *PostgresArticleRepo {
	return &PostgresArticleRepo{db: db}
}

const articleColumns = `id, slug, title, description, body, author_id, created_at, updated_at`

func scanArticle(row *sql.Row) (*model.Article, error) {
	article := &model.Article{}
	err := row.Scan(
		&article.ID, &article.Slug, &article.Title, &article.Description,
		&article.Body, &article.AuthorID, &article.CreatedAt, &article.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, classifyError(err, "記事行の読み取りに失敗しました")
	}
	return article, nil
}

// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
func (r *PostgresArticleRepo) FindByID(ctx context.Context, id string) (*model.Article, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = $1`,
		id,
	)
	return scanArticle(row)
}

// FindBySlug はスラッグで記事を検索する。見つからない場合はnilを返す。
func (r *PostgresArticleRepo) FindBySlug(ctx context.Context, slug string) (*model.Article, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE slug = $1`,
		slug,
	)
	return scanArticle(row)
}

// Create は記事を作成する。
func (r *PostgresArticleRepo) Create(ctx context.Context, article *model.Article) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO articles (id, slug, title, description, body, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		article.ID, article.Slug, article.Title, article.Description,
		article.Body, article.AuthorID, article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		return classifyError(err, "記事の作成に失敗しました")
	}
	return nil
}

// ListRecent は記事を作成時刻の降順でlimit件まで返す。
func (r *PostgresArticleRepo) ListRecent(ctx context.Context, limit int) ([]*model.Article, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, classifyError(err, "記事一覧の取得に失敗しました")
	}
	defer rows.Close()

	var articles []*model.Article
	for rows.Next() {
		article := &model.Article{}
		if err := rows.Scan(
			&article.ID, &article.Slug, &article.Title, &article.Description,
			&article.Body, &article.AuthorID, &article.CreatedAt, &article.UpdatedAt,
		); err != nil {
			return nil, classifyError(err, "記事行の読み取りに失敗しました")
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err, "記事一覧の走査に失敗しました")
	}
	return articles, nil
}

// compile-time interface check
var _ ArticleRepository = (*PostgresArticleRepo)(nil)
