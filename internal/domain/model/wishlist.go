package model

import "time"

// ウィッシュリスト。1会員につき1つ、初回追加時に遅延作成。
type Wishlist struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID  int64     `gorm:"not null;uniqueIndex" json:"customer_id"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	LastUpdated time.Time `gorm:"not null;autoUpdateTime" json:"last_updated"`
}

// ウィッシュリスト項目。(wishlist, product)はユニーク、数量は持たない。
type WishlistItem struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	WishlistID int64     `gorm:"not null;index;uniqueIndex:idx_wishlist_product" json:"wishlist_id"`
	ProductID  int64     `gorm:"not null;index;uniqueIndex:idx_wishlist_product" json:"product_id"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
