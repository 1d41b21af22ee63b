package model

import (
	"github.com/shopspring/decimal"
)

func init() {
	// priceは文字列ではなく数値としてJSONに出す
	decimal.MarshalJSONWithoutQuotes = true
}

// カタログの商品（カート側からは読み取り専用）
type Product struct {
	ID          string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	Image       string          `gorm:"type:text" json:"image"`
	Category    string          `gorm:"type:varchar(64);not null;index" json:"category"`
	Sizes       []string        `gorm:"serializer:json;not null" json:"sizes"`
	Color       string          `gorm:"type:varchar(64)" json:"color"`
	Stock       int64           `gorm:"not null" json:"stock"`
	Featured    bool            `gorm:"not null;default:false" json:"featured,omitempty"`
}

// sizeがこの商品のサイズに含まれるか
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
