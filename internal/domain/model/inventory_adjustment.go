package model

import "time"

// 在庫補充の履歴。チェックアウトの減算は注文明細から追えるので残さない。
type InventoryAdjustment struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID       int64     `gorm:"not null;index" json:"product_id"`
	AdminCustomerID int64     `gorm:"not null;index" json:"admin_customer_id"`
	Delta           int64     `gorm:"not null" json:"delta"`
	Reason          string    `gorm:"type:varchar(255);not null" json:"reason"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
