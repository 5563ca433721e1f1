// Package user はユーザー管理のドメインロジックを提供する。
package user

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

// Credentials はユーザーサービスが必要とする認証基盤のインターフェース。
type Credentials interface {
	// HashPassword は平文パスワードをソルト付きでハッシュ化する。
	HashPassword(plaintext string) (string, error)
	// VerifyPassword は平文パスワードとハッシュの一致を検証する。
	VerifyPassword(plaintext, hash string) bool
	// IssueToken は指定ユーザーIDと発行時刻を埋め込んだトークンを発行する。
	IssueToken(userID string, issuedAt time.Time) (string, error)
}

// TextSanitizer はプロフィール文のサニタイズインターフェース。
type TextSanitizer interface {
	SanitizeText(raw string) string
}

// Service はユーザー管理のサービス層。
// サインアップ、サインイン、検索、部分更新のビジネスロジックを提供する。
type Service struct {
	userRepo  repository.UserRepository
	creds     Credentials
	sanitizer TextSanitizer
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository, creds Credentials, sanitizer TextSanitizer) *Service {
	return &Service{
		userRepo:  userRepo,
		creds:     creds,
		sanitizer: sanitizer,
	}
}

// Signup は新規ユーザーを登録し、新しいIDに紐付いたトークンを発行する。
// email・usernameの重複はDUPLICATE_EMAIL / DUPLICATE_USERNAMEとして区別して返す。
func (s *Service) Signup(ctx context.Context, email, username, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	if email == "" {
		return nil, "", model.NewValidationError("メールアドレスは必須です")
	}
	if username == "" {
		return nil, "", model.NewValidationError("ユーザー名は必須です")
	}

	hashed, err := s.creds.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user := &model.User{
		ID:        uuid.New().String(),
		Email:     email,
		Username:  username,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.creds.IssueToken(user.ID, now)
	if err != nil {
		return nil, "", err
	}

	slog.Info("新規ユーザーを登録しました",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, token, nil
}

// Signin はメールアドレスとパスワードでユーザーを認証し、トークンを発行する。
// アカウント列挙を防ぐため、メールアドレス未登録とパスワード不一致は
// どちらも同じINVALID_CREDENTIALSを返す。
func (s *Service) Signin(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, "", model.NewInvalidCredentialsError()
	}

	if !s.creds.VerifyPassword(password, user.Password) {
		return nil, "", model.NewInvalidCredentialsError()
	}

	token, err := s.creds.IssueToken(user.ID, time.Now())
	if err != nil {
		return nil, "", err
	}

	slog.Info("ユーザーがサインインしました",
		slog.String("user_id", user.ID),
	)

	return user, token, nil
}

// FindByID は指定IDのユーザーを取得する。存在しない場合はUSER_NOT_FOUNDを返す。
func (s *Service) FindByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(id)
	}
	return user, nil
}

// FindByUsername はユーザー名でユーザーを取得する。存在しない場合はUSER_NOT_FOUNDを返す。
func (s *Service) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(username)
	}
	return user, nil
}

// Update はユーザーを部分更新する。指定されたフィールドのみを変更し、
// パスワードは再ハッシュ、プロフィール文はタグ除去の上で保存する。
// 同一ユーザーへの同時更新はストレージ層でlast-write-winsとなる。
func (s *Service) Update(ctx context.Context, userID string, changes model.UpdateUserChanges) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(userID)
	}

	if changes.Empty() {
		return user, nil
	}

	if changes.Email != nil {
		user.Email = strings.TrimSpace(strings.ToLower(*changes.Email))
	}
	if changes.Username != nil {
		user.Username = strings.TrimSpace(*changes.Username)
	}
	if changes.Password != nil {
		hashed, err := s.creds.HashPassword(*changes.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if changes.Bio != nil {
		bio := s.sanitizer.SanitizeText(*changes.Bio)
		user.Bio = &bio
	}
	if changes.Image != nil {
		user.Image = changes.Image
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("ユーザー情報を更新しました",
		slog.String("user_id", user.ID),
	)

	return user, nil
}
