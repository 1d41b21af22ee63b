package model

import "time"

// 保存済みカード。番号は下4桁のみ持つ。
type PaymentMethod struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID     string    `gorm:"type:varchar(64);not null;index" json:"user_id"`
	CardHolder string    `gorm:"type:varchar(255);not null" json:"card_holder"`
	LastFour   string    `gorm:"type:varchar(4);not null" json:"last_four"`
	ExpiryDate string    `gorm:"type:varchar(5);not null" json:"expiry_date"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
