package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "Completed"
)

// チェックアウトで確定した注文（決済は模擬）
type Order struct {
	ID            string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CustomerName  string          `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string          `gorm:"type:varchar(255);not null;index" json:"customer_email"`
	Address       string          `gorm:"type:varchar(255);not null" json:"address"`
	City          string          `gorm:"type:varchar(128);not null" json:"city"`
	PostalCode    string          `gorm:"type:varchar(32);not null" json:"postal_code"`
	Country       string          `gorm:"type:varchar(64);not null" json:"country"`
	CardLastFour  string          `gorm:"type:varchar(4)" json:"card_last_four"`
	Items         []OrderItem     `gorm:"serializer:json;not null" json:"items"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null" json:"status"`
	Date          time.Time       `gorm:"not null;index" json:"date"`
}
