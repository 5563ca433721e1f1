// Package article は記事管理と記事読み取りモデルの合成ロジックを提供する。
package article

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/conduit/internal/model"
	"github.com/hitoshi/conduit/internal/repository"
)

// DefaultListLimit は記事一覧のデフォルト取得件数。
const DefaultListLimit = 20

// AuthorFinder は記事著者の検索インターフェース。
type AuthorFinder interface {
	// FindByID は指定IDのユーザーを取得する。存在しない場合はUSER_NOT_FOUNDを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// ProfileComposer は閲覧者相対プロフィールの合成インターフェース。
type ProfileComposer interface {
	Compose(ctx context.Context, subject *model.User, viewerID *string) (*model.Profile, error)
}

// TagStore はタグ操作のインターフェース。
type TagStore interface {
	CreateTags(ctx context.Context, articleID string, names []string) ([]model.Tag, error)
	ListByArticle(ctx context.Context, articleID string) ([]model.Tag, error)
}

// FavoriteGraph はお気に入りグラフ操作のインターフェース。
type FavoriteGraph interface {
	Favorite(ctx context.Context, userID, articleID string) error
	Unfavorite(ctx context.Context, userID, articleID string) error
	Count(ctx context.Context, articleID string) (int, error)
	IsFavorited(ctx context.Context, userID, articleID string) (bool, error)
}

// ContentSanitizer は記事本文のサニタイズインターフェース。
type ContentSanitizer interface {
	SanitizeContent(rawHTML string) string
}

// Service は記事管理のサービス層。
// 記事・タグ・お気に入り情報・著者プロフィールを1つの読み取りモデルに合成する。
type Service struct {
	articleRepo repository.ArticleRepository
	authors     AuthorFinder
	profiles    ProfileComposer
	tags        TagStore
	favorites   FavoriteGraph
	sanitizer   ContentSanitizer
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	articleRepo repository.ArticleRepository,
	authors AuthorFinder,
	profiles ProfileComposer,
	tags TagStore,
	favorites FavoriteGraph,
	sanitizer ContentSanitizer,
) *Service {
	return &Service{
		articleRepo: articleRepo,
		authors:     authors,
		profiles:    profiles,
		tags:        tags,
		favorites:   favorites,
		sanitizer:   sanitizer,
	}
}

// Hydrate は記事にタグ・お気に入り情報・著者プロフィールを結合した読み取りモデルを返す。
// 4つの読み取りは1つの論理単位として実行され、いずれかが失敗した場合は
// 発生元のエラーで全体を中断する。部分的な結果が外部に見えることはない。
func (s *Service) Hydrate(ctx context.Context, article *model.Article, viewerID *string) (*model.ArticleDetail, error) {
	tags, err := s.tags.ListByArticle(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	count, err := s.favorites.Count(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	favorited := false
	if viewerID != nil {
		favorited, err = s.favorites.IsFavorited(ctx, *viewerID, article.ID)
		if err != nil {
			return nil, err
		}
	}

	author, err := s.authors.FindByID(ctx, article.AuthorID)
	if err != nil {
		return nil, err
	}

	authorProfile, err := s.profiles.Compose(ctx, author, viewerID)
	if err != nil {
		return nil, err
	}

	return &model.ArticleDetail{
		Article: *article,
		Author:  *authorProfile,
		Favorite: model.FavoriteInfo{
			Favorited:      favorited,
			FavoritesCount: count,
		},
		Tags: tags,
	}, nil
}

// Create は新規記事を作成し、タグを入力順で付与した読み取りモデルを返す。
// 本文はサニタイズの上で保存され、スラッグはタイトルから生成される。
func (s *Service) Create(ctx context.Context, authorID, title, description, body string, tagNames []string) (*model.ArticleDetail, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, model.NewValidationError("タイトルは必須です")
	}

	now := time.Now()
	article := &model.Article{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Body:        s.sanitizer.SanitizeContent(body),
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	article.Slug = slugify(title, article.ID)

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	if _, err := s.tags.CreateTags(ctx, article.ID, tagNames); err != nil {
		return nil, err
	}

	slog.Info("記事を作成しました",
		slog.String("article_id", article.ID),
		slog.String("slug", article.Slug),
		slog.String("author_id", authorID),
	)

	return s.Hydrate(ctx, article, &authorID)
}

// GetBySlug はスラッグで記事を検索し、閲覧者相対の読み取りモデルを返す。
func (s *Service) GetBySlug(ctx context.Context, slug string, viewerID *string) (*model.ArticleDetail, error) {
	article, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.Hydrate(ctx, article, viewerID)
}

// List は最新の記事をlimit件まで、それぞれ合成済みの読み取りモデルで返す。
// limitが0以下の場合はDefaultListLimitを使用する。
func (s *Service) List(ctx context.Context, viewerID *string, limit int) ([]*model.ArticleDetail, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	articles, err := s.articleRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("記事一覧の取得に失敗しました: %w", err)
	}

	details := make([]*model.ArticleDetail, 0, len(articles))
	for _, article := range articles {
		detail, err := s.Hydrate(ctx, article, viewerID)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// FavoriteBySlug はスラッグで記事を解決してお気に入りに登録し、
// 登録後の読み取りモデルを返す。
func (s *Service) FavoriteBySlug(ctx context.Context, viewerID, slug string) (*model.ArticleDetail, error) {
	article, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.favorites.Favorite(ctx, viewerID, article.ID); err != nil {
		return nil, err
	}

	return s.Hydrate(ctx, article, &viewerID)
}

// UnfavoriteBySlug はスラッグで記事を解決してお気に入りを解除し、
// 解除後の読み取りモデルを返す。
func (s *Service) UnfavoriteBySlug(ctx context.Context, viewerID, slug string) (*model.ArticleDetail, error) {
	article, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.favorites.Unfavorite(ctx, viewerID, article.ID); err != nil {
		return nil, err
	}

	return s.Hydrate(ctx, article, &viewerID)
}

func (s *Service) findBySlug(ctx context.Context, slug string) (*model.Article, error) {
	article, err := s.articleRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("記事の取得に失敗しました: %w", err)
	}
	if article == nil {
		return nil, model.NewArticleNotFoundError(slug)
	}
	return article, nil
}

// slugify はタイトルをURL安全なスラッグに変換する。
// 一意制約との衝突を避けるため、記事IDの先頭8文字を接尾辞として付与する。
func slugify(title, articleID string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")

	suffix := articleID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
