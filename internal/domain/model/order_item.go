package model

import "github.com/shopspring/decimal"

// 注文時点の明細スナップショット
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Size      string          `json:"size"`
}

func NewOrderItem(l BasketLine) OrderItem {
	return OrderItem{
		ProductID: l.ID,
		Name:      l.Name,
		Price:     l.Price,
		Quantity:  l.Quantity,
		Size:      l.Size,
	}
}
