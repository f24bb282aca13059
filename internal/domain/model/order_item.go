package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。単価はチェックアウト時点のスナップショットで、
// 商品価格が後で変わっても変更しない。
type OrderItem struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64           `gorm:"not null;index" json:"order_id"`
	ProductID           int64           `gorm:"not null;index" json:"product_id"`
	ProductNameSnapshot string          `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	Quantity            int64           `gorm:"not null" json:"quantity"`
	PricePerUnit        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price_per_unit"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

// Subtotal は数量×スナップショット単価。
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.PricePerUnit.Mul(decimal.NewFromInt(i.Quantity))
}
