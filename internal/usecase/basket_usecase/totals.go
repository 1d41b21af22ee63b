package basket

import (
	"clothco/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 表示用のカート状態。個数と合計は毎回明細から計算する。
type Snapshot struct {
	Items     []model.BasketLine `json:"items"`
	ItemCount int64              `json:"item_count"`
	Total     decimal.Decimal    `json:"total"`
}

func newSnapshot(lines []model.BasketLine) Snapshot {
	return Snapshot{
		Items:     copyLines(lines),
		ItemCount: itemCount(lines),
		Total:     total(lines),
	}
}

func itemCount(lines []model.BasketLine) int64 {
	var n int64
	for _, l := range lines {
		n = addQuantity(n, l.Quantity)
	}
	return n
}

func total(lines []model.BasketLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}
