package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// 許可される遷移だけを定義する（delivered→pending等は不可）。
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// CanTransitionTo は現在のステータスからnextへ進めるかを返す。
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid は定義済みステータスかどうかを返す。
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// 注文。合計はチェックアウト時に確定し、以後再計算しない。
type Order struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID        int64           `gorm:"not null;index" json:"customer_id"`
	OrderDate         time.Time       `gorm:"not null;index" json:"order_date"`
	Status            OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	BillingAddressID  *int64          `json:"billing_address_id"`
	ShippingAddressID *int64          `json:"shipping_address_id"`
	IdempotencyKey    string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
