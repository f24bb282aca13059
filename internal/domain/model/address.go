package model

import "time"

// 住所。注文から参照された後は編集不可（履歴保全）。
type Address struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64  `gorm:"not null;index" json:"customer_id"`
	Street     string `gorm:"type:varchar(255);not null" json:"street"`
	City       string `gorm:"type:varchar(100);not null" json:"city"`
	PostalCode string `gorm:"type:varchar(20);not null" json:"postal_code"`
	Country    string `gorm:"type:varchar(100);not null" json:"country"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
