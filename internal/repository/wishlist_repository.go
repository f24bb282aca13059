package repository

import (
	"context"

	"webshop/internal/domain/model"
)

type WishlistRepository interface {
	GetOrCreateByCustomerID(ctx context.Context, customerID int64) (model.Wishlist, error)
	ListItems(ctx context.Context, wishlistID int64) ([]model.WishlistItem, error)
	//既に入っている商品の追加は何もしない
	AddItem(ctx context.Context, wishlistID int64, productID int64) error
	RemoveItem(ctx context.Context, wishlistID int64, productID int64) error
}
