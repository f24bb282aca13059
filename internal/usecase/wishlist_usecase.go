package usecase

import (
	"context"
	"net/http"

	repo "webshop/internal/repository"

	"github.com/shopspring/decimal"
)

// WishlistUsecase はウィッシュリストの業務ロジック。
// カートや注文とは独立で、在庫にも触らない。
type WishlistUsecase struct {
	wishlistRepo repo.WishlistRepository
	productRepo  repo.ProductRepository
}

func NewWishlistUsecase(wishlistRepo repo.WishlistRepository, productRepo repo.ProductRepository) *WishlistUsecase {
	return &WishlistUsecase{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

type WishlistItemResponse struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int64           `json:"stock"`
}

type WishlistResponse struct {
	Items []WishlistItemResponse `json:"items"`
}

func (u *WishlistUsecase) GetWishlist(ctx context.Context, customerID int64) (WishlistResponse, error) {
	if customerID <= 0 {
		return WishlistResponse{}, errUnauthorized()
	}

	wl, err := u.wishlistRepo.GetOrCreateByCustomerID(ctx, customerID)
	if err != nil {
		return WishlistResponse{}, errDB()
	}

	items, err := u.wishlistRepo.ListItems(ctx, wl.ID)
	if err != nil {
		return WishlistResponse{}, errDB()
	}

	resp := WishlistResponse{Items: make([]WishlistItemResponse, 0, len(items))}
	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}
		resp.Items = append(resp.Items, WishlistItemResponse{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Stock:     p.Stock,
		})
	}

	return resp, nil
}

// AddProduct は商品を追加する。既に入っていれば何も起きない。
func (u *WishlistUsecase) AddProduct(ctx context.Context, customerID int64, productID int64) (WishlistResponse, error) {
	if customerID <= 0 {
		return WishlistResponse{}, errUnauthorized()
	}
	if productID <= 0 {
		return WishlistResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return WishlistResponse{}, errNotFound()
		}
		return WishlistResponse{}, errDB()
	}

	wl, err := u.wishlistRepo.GetOrCreateByCustomerID(ctx, customerID)
	if err != nil {
		return WishlistResponse{}, errDB()
	}

	if err := u.wishlistRepo.AddItem(ctx, wl.ID, productID); err != nil {
		return WishlistResponse{}, errDB()
	}

	return u.GetWishlist(ctx, customerID)
}

func (u *WishlistUsecase) RemoveProduct(ctx context.Context, customerID int64, productID int64) (WishlistResponse, error) {
	if customerID <= 0 {
		return WishlistResponse{}, errUnauthorized()
	}
	if productID <= 0 {
		return WishlistResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	wl, err := u.wishlistRepo.GetOrCreateByCustomerID(ctx, customerID)
	if err != nil {
		return WishlistResponse{}, errDB()
	}

	err = u.wishlistRepo.RemoveItem(ctx, wl.ID, productID)
	if err == repo.ErrNotFound {
		return WishlistResponse{}, errNotFound()
	}
	if err != nil {
		return WishlistResponse{}, errDB()
	}

	return u.GetWishlist(ctx, customerID)
}
