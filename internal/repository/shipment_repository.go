package repository

import (
	"context"
	"time"

	"webshop/internal/domain/model"
)

type ShipmentRepository interface {
	Create(ctx context.Context, s model.Shipment) (model.Shipment, error)
	FindByID(ctx context.Context, shipmentID int64) (model.Shipment, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.Shipment, error)
	MarkShipped(ctx context.Context, shipmentID int64, at time.Time) error
	MarkDelivered(ctx context.Context, shipmentID int64, at time.Time) error
}
