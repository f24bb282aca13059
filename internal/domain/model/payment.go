package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodPayPal  PaymentMethod = "paypal"
	PaymentMethodInvoice PaymentMethod = "invoice"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// 支払い。注文と1対1、金額は注文合計と一致する。
type Payment struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64           `gorm:"not null;uniqueIndex" json:"order_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Method      PaymentMethod   `gorm:"type:varchar(32);not null" json:"method"`
	Status      PaymentStatus   `gorm:"type:varchar(20);not null" json:"status"`
	PaymentDate time.Time       `gorm:"not null;autoCreateTime" json:"payment_date"`
}
