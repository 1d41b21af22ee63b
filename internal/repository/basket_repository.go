package repository

import (
	"context"

	"clothco/internal/domain/model"
)

// カートの保存先（KV・SQL・メモリのどれでも満たせる約束）。
// どの操作も同じ入力で繰り返しても結果は同じ。
type BasketRepository interface {
	// 保存済みの明細を全部返す（順序は保証しない）
	GetAll(ctx context.Context) ([]model.BasketRecord, error)
	// 複合キーでupsert
	Put(ctx context.Context, rec model.BasketRecord) error
	// 無ければ何もしない
	Delete(ctx context.Context, key model.LineKey) error
	Clear(ctx context.Context) error
}
