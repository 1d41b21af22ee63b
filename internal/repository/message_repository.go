package repository

import (
	"context"

	"clothco/internal/domain/model"
)

type MessageFilter string

const (
	MessageFilterAll    MessageFilter = "all"
	MessageFilterUnread MessageFilter = "unread"
	MessageFilterRead   MessageFilter = "read"
)

type MessageRepository interface {
	Create(ctx context.Context, m model.Message) error
	FindByID(ctx context.Context, id string) (model.Message, error)
	// 新しい順
	List(ctx context.Context, f MessageFilter) ([]model.Message, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Message, error)
	CountUnread(ctx context.Context) (int64, error)
	// 既読フラグと返信だけを書き戻す
	Update(ctx context.Context, m model.Message) error
}
