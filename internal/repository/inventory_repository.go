package repository

import (
	"context"

	"webshop/internal/domain/model"
)

// 在庫台帳。読んでから書くのではなく、条件付きUPDATE一発で減算する。
type InventoryRepository interface {
	// 在庫が足りるときだけ減算（stock >= qty の行だけ更新）
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 補充・キャンセル時の在庫戻し（上限なし）
	IncreaseStock(ctx context.Context, productID int64, qty int64) error

	// 補充履歴作成
	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
}
