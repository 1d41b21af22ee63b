package repository

import (
	"context"

	"clothco/internal/domain/model"
)

type PaymentMethodRepository interface {
	Create(ctx context.Context, pm model.PaymentMethod) error
	ListByUserID(ctx context.Context, userID string) ([]model.PaymentMethod, error)
	// 他人のカードは ErrNotFound
	DeleteByUser(ctx context.Context, userID string, id string) error
}
