package model

import (
	"github.com/shopspring/decimal"
)

// カート明細の複合キー（商品ID＋サイズ）
type LineKey struct {
	ProductID string
	Size      string
}

// 永続化用のキー文字列 "{id}-{size}"
func (k LineKey) String() string {
	return k.ProductID + "-" + k.Size
}

// カートの明細。サイズ違いは別の明細。
type BasketLine struct {
	Product
	Quantity int64  `json:"quantity"`
	Size     string `json:"size"`
	Position int64  `json:"-"` // 表示順。サイズを変えても引き継ぐ
}

func (l BasketLine) Key() LineKey {
	return LineKey{ProductID: l.ID, Size: l.Size}
}

// 単価×数量
func (l BasketLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}

// バックエンドに保存する明細レコード。
// JSONの形は { id, name, price, ..., quantity, size, key } で互換を保つ。
// keyは表示用で、"-"を含むIDやサイズだと一意にならないので主キーにはしない。
type BasketRecord struct {
	ProductID   string          `gorm:"primaryKey;column:product_id;type:varchar(64)" json:"id"`
	Size        string          `gorm:"primaryKey;type:varchar(64)" json:"size"`
	LineKey     string          `gorm:"column:line_key;type:varchar(255);not null" json:"key"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	Image       string          `gorm:"type:text" json:"image"`
	Category    string          `gorm:"type:varchar(64)" json:"category"`
	Sizes       []string        `gorm:"serializer:json" json:"sizes"`
	Color       string          `gorm:"type:varchar(64)" json:"color"`
	Stock       int64           `gorm:"not null" json:"stock"`
	Featured    bool            `gorm:"not null;default:false" json:"featured,omitempty"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	Position    int64           `gorm:"not null;default:0" json:"-"`
}

func (BasketRecord) TableName() string {
	return "basket_items"
}

func NewBasketRecord(l BasketLine) BasketRecord {
	return BasketRecord{
		LineKey:     l.Key().String(),
		ProductID:   l.ID,
		Name:        l.Name,
		Price:       l.Price,
		Description: l.Description,
		Image:       l.Image,
		Category:    l.Category,
		Sizes:       append([]string(nil), l.Sizes...),
		Color:       l.Color,
		Stock:       l.Stock,
		Featured:    l.Featured,
		Quantity:    l.Quantity,
		Size:        l.Size,
		Position:    l.Position,
	}
}

func (r BasketRecord) Line() BasketLine {
	return BasketLine{
		Product: Product{
			ID:          r.ProductID,
			Name:        r.Name,
			Price:       r.Price,
			Description: r.Description,
			Image:       r.Image,
			Category:    r.Category,
			Sizes:       append([]string(nil), r.Sizes...),
			Color:       r.Color,
			Stock:       r.Stock,
			Featured:    r.Featured,
		},
		Quantity: r.Quantity,
		Size:     r.Size,
		Position: r.Position,
	}
}

func (r BasketRecord) Key() LineKey {
	return LineKey{ProductID: r.ProductID, Size: r.Size}
}
