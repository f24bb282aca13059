package repository

import (
	"context"
	"errors"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistGormRepository struct {
	db *gorm.DB
}

func NewWishlistGormRepository(db *gorm.DB) *WishlistGormRepository {
	return &WishlistGormRepository{db: db}
}

// 会員のウィッシュリストを取得し、無ければ作成
func (r *WishlistGormRepository) GetOrCreateByCustomerID(ctx context.Context, customerID int64) (model.Wishlist, error) {
	var wl model.Wishlist

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Where("customer_id = ?", customerID).
			First(&wl).Error

		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		newWl := model.Wishlist{CustomerID: customerID}
		if err := tx.Create(&newWl).Error; err != nil {
			retryErr := tx.Where("customer_id = ?", customerID).First(&wl).Error
			if retryErr == nil {
				return nil
			}
			return err
		}

		wl = newWl
		return nil
	})

	if err != nil {
		return model.Wishlist{}, err
	}
	return wl, nil
}

func (r *WishlistGormRepository) ListItems(ctx context.Context, wishlistID int64) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	err := r.db.WithContext(ctx).
		Where("wishlist_id = ?", wishlistID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.WishlistItem{}, err
	}
	return items, nil
}

// 既に入っている商品ならそのまま（ユニーク制約で弾いて無視）
func (r *WishlistGormRepository) AddItem(ctx context.Context, wishlistID int64, productID int64) error {
	item := model.WishlistItem{
		WishlistID: wishlistID,
		ProductID:  productID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&item).Error
}

func (r *WishlistGormRepository) RemoveItem(ctx context.Context, wishlistID int64, productID int64) error {
	res := r.db.WithContext(ctx).
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Delete(&model.WishlistItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
