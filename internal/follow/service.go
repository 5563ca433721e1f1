// Package follow はフォローグラフのドメインロジックを提供する。
package follow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/conduit/internal/model"
	"github.com/hitoshi/conduit/internal/repository"
)

// Service はフォローグラフのサービス層。
// フォロー・アンフォローはどちらも冪等で、重複作成・不存在削除は成功扱いとする。
type Service struct {
	followRepo repository.FollowRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(followRepo repository.FollowRepository) *Service {
	return &Service{followRepo: followRepo}
}

// Follow はフォローエッジを作成する。既にフォロー済みの場合は何もせず成功する。
// 自己フォローは境界で拒否する。
func (s *Service) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return model.NewSelfFollowError()
	}

	if err := s.followRepo.Create(ctx, followerID, followeeID); err != nil {
		return fmt.Errorf("フォローに失敗しました: %w", err)
	}

	slog.Info("フォローしました",
		slog.String("follower_id", followerID),
		slog.String("followee_id", followeeID),
	)
	return nil
}

// Unfollow はフォローエッジを削除する。エッジが存在しない場合も成功扱い。
func (s *Service) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if err := s.followRepo.Delete(ctx, followerID, followeeID); err != nil {
		return fmt.Errorf("アンフォローに失敗しました: %w", err)
	}

	slog.Info("アンフォローしました",
		slog.String("follower_id", followerID),
		slog.String("followee_id", followeeID),
	)
	return nil
}

// IsFollowing はフォロー関係の有無を返す。エッジが見つからない場合はfalse。
func (s *Service) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	exists, err := s.followRepo.Exists(ctx, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("フォロー状態の確認に失敗しました: %w", err)
	}
	return exists, nil
}
