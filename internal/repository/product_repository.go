package repository

import (
	"clothco/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 既に同じキーがある
var ErrAlreadyExists = errors.New("already exists")

// 商品の永続化（保存・取得）だけを約束。
// 絞り込みと並び替えはusecase側でやる。
type ProductRepository interface {
	ListAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	Count(ctx context.Context) (int64, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id string) error
}
