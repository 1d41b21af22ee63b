// Package seed は初期カタログを埋め込みで持つ。
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"clothco/internal/domain/model"
)

//go:embed products.json
var productsJSON []byte

// 初期商品（毎回新しいスライスを返す）
func Products() ([]model.Product, error) {
	var products []model.Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("unmarshal seed products: %w", err)
	}
	return products, nil
}
