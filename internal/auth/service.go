// Package auth はパスワードハッシュ化とセッショントークンの発行・検証を提供する。
// トークンはサーバー側に状態を持たないHMAC署名付きJWTとして発行する。
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hitoshi/conduit/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	TokenSecret string        // トークン署名鍵
	TokenTTL    time.Duration // トークン有効期間
	BcryptCost  int           // bcryptコスト。0以下の場合はbcrypt.DefaultCost
}

// Service はパスワードとトークンに関する認証基盤を提供する。
// 共有可変状態を持たず、並行に安全に利用できる。
type Service struct {
	secret []byte
	ttl    time.Duration
	cost   int
}

// Claims はトークンに埋め込むクレーム。
// 標準クレームに加えてユーザーIDを保持する。
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// NewService はServiceを生成する。
func NewService(config ServiceConfig) *Service {
	cost := config.BcryptCost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		secret: []byte(config.TokenSecret),
		ttl:    config.TokenTTL,
		cost:   cost,
	}
}

// HashPassword は平文パスワードをソルト付きで一方向ハッシュ化する。
// 空のパスワードはポリシーとして拒否する。
func (s *Service) HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", model.NewCredentialError("パスワードが空です")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		return "", model.NewCredentialError(err.Error())
	}
	return string(hashed), nil
}

// VerifyPassword は平文パスワードとハッシュの一致を検証する。
// 不一致・不正なハッシュのいずれもfalseを返す（fail closed）。
func (s *Service) VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// IssueToken は指定ユーザーIDと発行時刻を埋め込んだ署名付きトークンを発行する。
func (s *Service) IssueToken(userID string, issuedAt time.Time) (string, error) {
	if len(s.secret) == 0 {
		return "", model.NewCredentialError("トークン署名鍵が設定されていません")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", model.NewCredentialError(err.Error())
	}
	return signed, nil
}

// VerifyToken はトークンの署名と有効期限を検証し、埋め込まれたユーザーIDを返す。
// 署名・形式の不正はTOKEN_INVALID、期限切れはTOKEN_EXPIREDを返す。
func (s *Service) VerifyToken(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", model.NewTokenExpiredError()
		}
		return "", model.NewTokenInvalidError()
	}

	if !token.Valid || claims.UserID == "" {
		return "", model.NewTokenInvalidError()
	}

	return claims.UserID, nil
}
