package model

import "time"

// カート。1会員につき1つ、初回操作時に遅延作成。
// チェックアウト後も行は残り、明細だけが消える。
type Cart struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID  int64     `gorm:"not null;uniqueIndex" json:"customer_id"`
	LastUpdated time.Time `gorm:"not null;autoUpdateTime" json:"last_updated"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
