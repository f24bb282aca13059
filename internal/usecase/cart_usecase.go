package usecase

import (
	"context"
	"net/http"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジック。
// 数量と在庫の比較は、書き込みと同じトランザクションの中で行う。
type CartUsecase struct {
	tx           repo.TransactionManager
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	tx repo.TransactionManager,
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		tx:           tx,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// price は現在のカタログ価格。注文と違いスナップショットではない。
type CartItemResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// item_count は明細数量の合計を毎回再計算する（カウンタは持たない）。
type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	Total     decimal.Decimal    `json:"total"`
	ItemCount int64              `json:"item_count"`
}

type AddCartItemInput struct {
	ProductID int64
	Quantity  int64
}

// GetCart はカート取得（無ければ作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, customerID int64) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, errUnauthorized()
	}

	cart, err := u.cartRepo.GetOrCreateByCustomerID(ctx, customerID)
	if err != nil {
		return CartResponse{}, errDB()
	}

	return u.buildCartResponse(ctx, u.cartItemRepo, u.productRepo, cart.ID)
}

// AddItem はカートに追加（同一商品は数量加算）。
// 在庫0はout of stock、加算後に在庫を超える場合は何も変えずに失敗する。
func (u *CartUsecase) AddItem(ctx context.Context, customerID int64, in AddCartItemInput) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, errUnauthorized()
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	cart, err := u.cartRepo.GetOrCreateByCustomerID(ctx, customerID)
	if err != nil {
		return CartResponse{}, errDB()
	}

	var out CartResponse

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, in.ProductID)
		if err == repo.ErrNotFound {
			return errNotFound()
		}
		if err != nil {
			return errDB()
		}

		if p.Stock <= 0 {
			return NewHTTPError(http.StatusConflict, "out of stock")
		}

		//既存明細があれば加算、無ければ新規
		existing, err := r.CartItems().FindByCartAndProduct(ctx, cart.ID, in.ProductID)
		if err != nil && err != repo.ErrNotFound {
			return errDB()
		}

		newQty := in.Quantity
		if err == nil {
			newQty = existing.Quantity + in.Quantity
		}

		if newQty > p.Stock {
			return errInsufficientStock(p.Name)
		}

		if err == nil {
			if err := r.CartItems().UpdateQuantity(ctx, existing.ID, newQty); err != nil {
				return errDB()
			}
		} else {
			_, err := r.CartItems().Create(ctx, model.CartItem{
				CartID:    cart.ID,
				ProductID: in.ProductID,
				Quantity:  newQty,
			})
			if err != nil {
				return errDB()
			}
		}

		resp, err := u.buildCartResponse(ctx, r.CartItems(), r.Products(), cart.ID)
		if err != nil {
			return err
		}
		out = resp
		return nil
	})

	if err != nil {
		return CartResponse{}, err
	}
	return out, nil
}

// IncreaseItem は数量を1増やす（在庫を超えるなら失敗）。
func (u *CartUsecase) IncreaseItem(ctx context.Context, customerID int64, cartItemID int64) (CartResponse, error) {
	return u.changeQuantity(ctx, customerID, cartItemID, +1)
}

// DecreaseItem は数量を1減らす（0になるなら明細ごと削除）。
func (u *CartUsecase) DecreaseItem(ctx context.Context, customerID int64, cartItemID int64) (CartResponse, error) {
	return u.changeQuantity(ctx, customerID, cartItemID, -1)
}

func (u *CartUsecase) changeQuantity(ctx context.Context, customerID int64, cartItemID int64, delta int64) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, errUnauthorized()
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	owned, err := u.cartItemRepo.IsOwnedByCustomer(ctx, cartItemID, customerID)
	if err != nil {
		return CartResponse{}, errDB()
	}
	if !owned {
		return CartResponse{}, errNotFound()
	}

	cart, err := u.cartRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return CartResponse{}, errDB()
	}

	var out CartResponse

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		item, err := r.CartItems().FindByID(ctx, cartItemID)
		if err == repo.ErrNotFound {
			return errNotFound()
		}
		if err != nil {
			return errDB()
		}

		newQty := item.Quantity + delta

		if newQty < 1 {
			//数量0は保存しない
			if err := r.CartItems().DeleteByID(ctx, cartItemID); err != nil {
				return errDB()
			}
		} else {
			if delta > 0 {
				//増やす時だけ在庫を見る
				p, err := r.Products().FindByID(ctx, item.ProductID)
				if err == repo.ErrNotFound {
					return errNotFound()
				}
				if err != nil {
					return errDB()
				}
				if newQty > p.Stock {
					return errInsufficientStock(p.Name)
				}
			}

			if err := r.CartItems().UpdateQuantity(ctx, cartItemID, newQty); err != nil {
				return errDB()
			}
		}

		resp, err := u.buildCartResponse(ctx, r.CartItems(), r.Products(), cart.ID)
		if err != nil {
			return err
		}
		out = resp
		return nil
	})

	if err != nil {
		return CartResponse{}, err
	}
	return out, nil
}

// RemoveItem は明細を無条件で削除する。
func (u *CartUsecase) RemoveItem(ctx context.Context, customerID int64, cartItemID int64) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, errUnauthorized()
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	owned, err := u.cartItemRepo.IsOwnedByCustomer(ctx, cartItemID, customerID)
	if err != nil {
		return CartResponse{}, errDB()
	}
	if !owned {
		return CartResponse{}, errNotFound()
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, errNotFound()
		}
		return CartResponse{}, errDB()
	}

	cart, err := u.cartRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return CartResponse{}, errDB()
	}
	return u.buildCartResponse(ctx, u.cartItemRepo, u.productRepo, cart.ID)
}

// 明細をまとめてCartResponseを作る。金額は現在価格で都度計算。
func (u *CartUsecase) buildCartResponse(
	ctx context.Context,
	items repo.CartItemRepository,
	products repo.ProductRepository,
	cartID int64,
) (CartResponse, error) {
	list, err := items.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, errDB()
	}

	respItems := make([]CartItemResponse, 0, len(list))
	total := decimal.Zero
	var count int64 = 0

	for _, it := range list {
		p, err := products.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}

		subtotal := p.Price.Mul(decimal.NewFromInt(it.Quantity))

		respItems = append(respItems, CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
			Subtotal:  subtotal,
		})

		total = total.Add(subtotal)
		count += it.Quantity
	}

	return CartResponse{Items: respItems, Total: total, ItemCount: count}, nil
}
