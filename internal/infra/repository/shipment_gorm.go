package repository

import (
	"context"
	"errors"
	"time"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"

	"gorm.io/gorm"
)

type ShipmentGormRepository struct {
	db *gorm.DB
}

func NewShipmentGormRepository(db *gorm.DB) *ShipmentGormRepository {
	return &ShipmentGormRepository{db: db}
}

func (r *ShipmentGormRepository) Create(ctx context.Context, s model.Shipment) (model.Shipment, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Shipment{}, err
	}
	return s, nil
}

func (r *ShipmentGormRepository) FindByID(ctx context.Context, shipmentID int64) (model.Shipment, error) {
	var s model.Shipment
	err := r.db.WithContext(ctx).Where("id = ?", shipmentID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shipment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Shipment{}, err
	}
	return s, nil
}

func (r *ShipmentGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.Shipment, error) {
	var list []model.Shipment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id asc").Find(&list).Error
	if err != nil {
		return []model.Shipment{}, err
	}
	return list, nil
}

func (r *ShipmentGormRepository) MarkShipped(ctx context.Context, shipmentID int64, at time.Time) error {
	return r.updateProgress(ctx, shipmentID, map[string]interface{}{
		"status":       model.ShipmentStatusShipped,
		"shipped_date": at,
	})
}

func (r *ShipmentGormRepository) MarkDelivered(ctx context.Context, shipmentID int64, at time.Time) error {
	return r.updateProgress(ctx, shipmentID, map[string]interface{}{
		"status":        model.ShipmentStatusDelivered,
		"delivery_date": at,
	})
}

func (r *ShipmentGormRepository) updateProgress(ctx context.Context, shipmentID int64, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Shipment{}).
		Where("id = ?", shipmentID).
		Updates(fields)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
