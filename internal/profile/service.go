// Package profile は閲覧者相対のプロフィール合成ロジックを提供する。
package profile

import (
	"context"
	"fmt"

	"github.com/hitoshi/conduit/internal/model"
)

// UserFinder はプロフィール対象ユーザーの検索インターフェース。
type UserFinder interface {
	// FindByUsername はユーザー名でユーザーを取得する。存在しない場合はUSER_NOT_FOUNDを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// FollowGraph はフォローグラフ操作のインターフェース。
type FollowGraph interface {
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
}

// Service はプロフィール合成のサービス層。
// followingはプロフィールの属性として保存されず、(閲覧者, 対象)の関数として毎回計算される。
type Service struct {
	users   UserFinder
	follows FollowGraph
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(users UserFinder, follows FollowGraph) *Service {
	return &Service{
		users:   users,
		follows: follows,
	}
}

// Compose は対象ユーザーと閲覧者からプロフィールを合成する。
// 匿名の閲覧者（viewerIDがnil）ではfollowingは常にfalse。
// フォローグラフの状態に対する純粋な読み取りで、変更もキャッシュも行わない。
func (s *Service) Compose(ctx context.Context, subject *model.User, viewerID *string) (*model.Profile, error) {
	following := false
	if viewerID != nil {
		var err error
		following, err = s.follows.IsFollowing(ctx, *viewerID, subject.ID)
		if err != nil {
			return nil, fmt.Errorf("フォロー状態の取得に失敗しました: %w", err)
		}
	}

	return &model.Profile{
		Username:  subject.Username,
		Bio:       subject.Bio,
		Image:     subject.Image,
		Following: following,
	}, nil
}

// ShowByUsername はユーザー名で対象を検索し、閲覧者相対のプロフィールを返す。
func (s *Service) ShowByUsername(ctx context.Context, username string, viewerID *string) (*model.Profile, error) {
	subject, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.Compose(ctx, subject, viewerID)
}

// FollowByUsername は対象をユーザー名で解決してフォローし、フォロー後のプロフィールを返す。
func (s *Service) FollowByUsername(ctx context.Context, viewerID, username string) (*model.Profile, error) {
	subject, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.follows.Follow(ctx, viewerID, subject.ID); err != nil {
		return nil, err
	}

	return &model.Profile{
		Username:  subject.Username,
		Bio:       subject.Bio,
		Image:     subject.Image,
		Following: true,
	}, nil
}

// UnfollowByUsername は対象をユーザー名で解決してアンフォローし、解除後のプロフィールを返す。
func (s *Service) UnfollowByUsername(ctx context.Context, viewerID, username string) (*model.Profile, error) {
	subject, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.follows.Unfollow(ctx, viewerID, subject.ID); err != nil {
		return nil, err
	}

	return &model.Profile{
		Username:  subject.Username,
		Bio:       subject.Bio,
		Image:     subject.Image,
		Following: false,
	}, nil
}
