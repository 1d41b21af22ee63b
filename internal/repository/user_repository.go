package repository

import (
	"clothco/internal/domain/model"
	"context"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（email重複はErrAlreadyExists）
	Create(ctx context.Context, user *model.User) error
	// 見つからなければ ErrNotFound
	FindByID(ctx context.Context, userID string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//注文数を＋１（未登録のemailなら何もしない）
	IncrementOrderCount(ctx context.Context, email string) error
}
