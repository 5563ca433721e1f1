// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// Passwordはbcryptハッシュのみを保持し、平文は保存されない。
type User struct {
	ID        string
	Email     string
	Username  string
	Password  string
	Bio       *string
	Image     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpdateUserChanges はユーザーの部分更新内容を表す。
// nilフィールドは変更せず、既存の値を維持する。
type UpdateUserChanges struct {
	Email    *string
	Username *string
	Password *string
	Bio      *string
	Image    *string
}

// Empty は更新対象フィールドが1つもないことを返す。
func (c UpdateUserChanges) Empty() bool {
	return c.Email == nil && c.Username == nil && c.Password == nil &&
		c.Bio == nil && c.Image == nil
}

// Profile は閲覧者から見たユーザーのプロフィールを表す。
// Followingは(閲覧者, 対象)の関数として読み取り時に毎回計算され、保存されない。
type Profile struct {
	Username  string
	Bio       *string
	Image     *string
	Following bool
}

// FollowEdge はフォロワーからフォロイーへの有向フォロー関係を表す。
// (follower_id, followee_id)の組はストレージの一意制約で高々1行に保たれる。
type FollowEdge struct {
	FollowerID string
	FolloweeID string
	CreatedAt  time.Time
}
