// Package favorite はお気に入りグラフのドメインロジックを提供する。
package favorite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/conduit/internal/repository"
)

// Service はお気に入りグラフのサービス層。
// フォローグラフと同じ規約で、作成・削除のどちらも冪等とする。
type Service struct {
	favoriteRepo repository.FavoriteRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(favoriteRepo repository.FavoriteRepository) *Service {
	return &Service{favoriteRepo: favoriteRepo}
}

// Favorite はお気に入りエッジを作成する。既にお気に入り済みの場合は何もせず成功する。
func (s *Service) Favorite(ctx context.Context, userID, articleID string) error {
	if err := s.favoriteRepo.Create(ctx, userID, articleID); err != nil {
		return fmt.Errorf("お気に入り登録に失敗しました: %w", err)
	}

	slog.Info("記事をお気に入りに登録しました",
		slog.String("user_id", userID),
		slog.String("article_id", articleID),
	)
	return nil
}

// Unfavorite はお気に入りエッジを削除する。エッジが存在しない場合も成功扱い。
func (s *Service) Unfavorite(ctx context.Context, userID, articleID string) error {
	if err := s.favoriteRepo.Delete(ctx, userID, articleID); err != nil {
		return fmt.Errorf("お気に入り解除に失敗しました: %w", err)
	}

	slog.Info("記事のお気に入りを解除しました",
		slog.String("user_id", userID),
		slog.String("article_id", articleID),
	)
	return nil
}

// Count は記事のお気に入り数を返す。
// 一意制約により同一ユーザーの重複カウントは発生しない。
func (s *Service) Count(ctx context.Context, articleID string) (int, error) {
	count, err := s.favoriteRepo.CountByArticleID(ctx, articleID)
	if err != nil {
		return 0, fmt.Errorf("お気に入り数の取得に失敗しました: %w", err)
	}
	return count, nil
}

// IsFavorited はユーザーが記事をお気に入り済みかを返す。エッジが見つからない場合はfalse。
func (s *Service) IsFavorited(ctx context.Context, userID, articleID string) (bool, error) {
	exists, err := s.favoriteRepo.Exists(ctx, userID, articleID)
	if err != nil {
		return false, fmt.Errorf("お気に入り状態の確認に失敗しました: %w", err)
	}
	return exists, nil
}

// ListFavoritedArticleIDs はユーザーがお気に入りした記事IDの一覧を返す。
func (s *Service) ListFavoritedArticleIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.favoriteRepo.ListArticleIDsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("お気に入り記事一覧の取得に失敗しました: %w", err)
	}
	return ids, nil
}
