// Package tag はタグ管理のドメインロジックを提供する。
package tag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/conduit/internal/model"
	"github.com/hitoshi/conduit/internal/repository"
)

// DefaultRecentLimit は最新タグ一覧のデフォルト取得件数。
const DefaultRecentLimit = 20

// Service はタグ管理のサービス層。
// タグは記事ごとに所有され、記事間で共有されない。同一記事内の重複は除去しない。
type Service struct {
	tagRepo repository.TagRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(tagRepo repository.TagRepository) *Service {
	return &Service{tagRepo: tagRepo}
}

// CreateTags は記事に対して名前ごとに1つのタグを一括作成し、入力順で返す。
// 空の入力は空の結果を返し、エラーにはならない。
// created_atは入力順に単調増加で採番され、一覧取得時の順序を再現する。
func (s *Service) CreateTags(ctx context.Context, articleID string, names []string) ([]model.Tag, error) {
	if len(names) == 0 {
		return []model.Tag{}, nil
	}

	base := time.Now()
	tags := make([]model.Tag, len(names))
	for i, name := range names {
		at := base.Add(time.Duration(i) * time.Microsecond)
		tags[i] = model.Tag{
			ID:        uuid.New().String(),
			ArticleID: articleID,
			Name:      strings.TrimSpace(name),
			CreatedAt: at,
			UpdatedAt: at,
		}
	}

	if err := s.tagRepo.CreateBulk(ctx, tags); err != nil {
		return nil, fmt.Errorf("タグの作成に失敗しました: %w", err)
	}

	return tags, nil
}

// ListByArticle は記事のタグ一覧を挿入順で返す。タグが無い場合は空のスライスを返す。
func (s *Service) ListByArticle(ctx context.Context, articleID string) ([]model.Tag, error) {
	tags, err := s.tagRepo.ListByArticleID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("記事タグ一覧の取得に失敗しました: %w", err)
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return tags, nil
}

// ListRecent は全記事のタグを作成時刻の降順でlimit件まで返す。
// limitが0以下の場合はDefaultRecentLimitを使用する。
func (s *Service) ListRecent(ctx context.Context, limit int) ([]model.Tag, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	tags, err := s.tagRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("最新タグ一覧の取得に失敗しました: %w", err)
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return tags, nil
}
