package repository

import (
	"context"

	"clothco/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) error
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	// 新しい順
	ListAll(ctx context.Context) ([]model.Order, error)
	ListByEmail(ctx context.Context, email string) ([]model.Order, error)
}
