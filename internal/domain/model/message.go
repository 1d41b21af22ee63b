package model

import "time"

// 添付はメタ情報だけ
type Attachment struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

type Reply struct {
	ID        string    `json:"id"`
	AdminID   string    `json:"admin_id"`
	AdminName string    `json:"admin_name"`
	Message   string    `json:"message"`
	Date      time.Time `json:"date"`
}

// ユーザーから管理者へのサポートメッセージ
type Message struct {
	ID          string       `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID      string       `gorm:"type:varchar(64);not null;index" json:"user_id"`
	UserName    string       `gorm:"type:varchar(255)" json:"user_name"`
	UserEmail   string       `gorm:"type:varchar(255)" json:"user_email"`
	Message     string       `gorm:"type:text" json:"message"`
	Attachments []Attachment `gorm:"serializer:json" json:"attachments"`
	Date        time.Time    `gorm:"not null;index" json:"date"`
	Read        bool         `gorm:"column:is_read;not null;default:false" json:"read"`
	Replies     []Reply      `gorm:"serializer:json" json:"replies"`
}
