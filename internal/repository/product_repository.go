package repository

import (
	"context"
	"errors"

	"webshop/internal/domain/model"
)

var (
	ErrNotFound = errors.New("not found")
	// ユニーク制約違反（email・カテゴリ名など）
	ErrDuplicate = errors.New("duplicate")
)

// 一覧検索
type ProductListQuery struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	//注文明細から参照されている商品は消せない
	Delete(ctx context.Context, id int64) error
	IsReferencedByOrderItem(ctx context.Context, id int64) (bool, error)
}
