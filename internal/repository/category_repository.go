package repository

import (
	"context"

	"webshop/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
	//商品が紐づいている間は削除不可
	Delete(ctx context.Context, id int64) error
	HasProducts(ctx context.Context, id int64) (bool, error)
}
