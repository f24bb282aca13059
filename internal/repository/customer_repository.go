package repository

import (
	"context"

	"webshop/internal/domain/model"
)

type CustomerRepository interface {
	FindByID(ctx context.Context, id int64) (model.Customer, error)
	FindByEmail(ctx context.Context, email string) (model.Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, c model.Customer) (model.Customer, error)

	//デフォルト住所の付け替え（billing / shipping）
	SetDefaultBillingAddress(ctx context.Context, customerID int64, addressID int64) error
	SetDefaultShippingAddress(ctx context.Context, customerID int64, addressID int64) error
}
