package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hitoshi/conduit/internal/model"
	"github.com/lib/pq"
)

// 一意制約名。マイグレーションで定義される制約名と一致させること。
const (
	constraintUsersEmail    = "users_email_key"
	constraintUsersUsername = "users_username_key"
)

// classifyError はドライバ由来のエラーを型付きエラーに分類する。
// - コンテキスト期限切れ（プール枯渇時の接続待ちを含む）はPOOL_TIMEOUT
// - 一意制約違反（SQLSTATE 23505）は発火した制約名に応じた重複エラー
// - それ以外はmsgでラップして伝播する
func classifyError(err error, msg string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return model.NewPoolTimeoutError()
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case constraintUsersEmail:
			return model.NewDuplicateEmailError()
		case constraintUsersUsername:
			return model.NewDuplicateUsernameError()
		}
	}

	return fmt.Errorf("%s: %w", msg, err)
}
