package model

import "time"

type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusShipped   ShipmentStatus = "shipped"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
)

// 配送。部分出荷のため1注文に複数持てる。
type Shipment struct {
	ID             int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID        int64          `gorm:"not null;index" json:"order_id"`
	Carrier        string         `gorm:"type:varchar(100)" json:"carrier"`
	TrackingNumber string         `gorm:"type:varchar(200)" json:"tracking_number"`
	Status         ShipmentStatus `gorm:"type:varchar(20);not null" json:"status"`
	ShippedDate    *time.Time     `json:"shipped_date"`
	DeliveryDate   *time.Time     `json:"delivery_date"`
	CreatedAt      time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}
