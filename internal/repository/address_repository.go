package repository

import (
	"context"

	"webshop/internal/domain/model"
)

type AddressRepository interface {
	ListByCustomerID(ctx context.Context, customerID int64) ([]model.Address, error)
	FindByID(ctx context.Context, addressID int64) (model.Address, error)
	Create(ctx context.Context, a model.Address) (model.Address, error)
	Update(ctx context.Context, a model.Address) error
	DeleteByID(ctx context.Context, addressID int64) error
	IsOwnedByCustomer(ctx context.Context, addressID int64, customerID int64) (bool, error)
	//注文から参照済みの住所は編集・削除不可にするための判定
	IsReferencedByOrder(ctx context.Context, addressID int64) (bool, error)
}
