package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"
	"webshop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newWishlistUsecase() (*usecase.WishlistUsecase, *WishlistRepoMock, *ProductRepoMock) {
	wRepo := new(WishlistRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewWishlistUsecase(wRepo, pRepo)
	return uc, wRepo, pRepo
}

func TestWishlistUsecase_AddProduct_NotFound(t *testing.T) {
	ctx := context.Background()
	uc, wRepo, pRepo := newWishlistUsecase()

	pRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddProduct(ctx, 1, 99)
	assertHTTPError(t, err, http.StatusNotFound, "not found")

	wRepo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestWishlistUsecase_AddProduct_Success(t *testing.T) {
	ctx := context.Background()
	uc, wRepo, pRepo := newWishlistUsecase()

	pRepo.On("FindByID", mock.Anything, int64(100)).Return(model.Product{ID: 100, Name: "Coffee", Price: price("10.00"), Stock: 5}, nil)
	wRepo.On("GetOrCreateByCustomerID", mock.Anything, int64(1)).Return(model.Wishlist{ID: 20, CustomerID: 1}, nil)
	wRepo.On("AddItem", mock.Anything, int64(20), int64(100)).Return(nil)
	wRepo.On("ListItems", mock.Anything, int64(20)).Return([]model.WishlistItem{
		{ID: 1, WishlistID: 20, ProductID: 100},
	}, nil)

	out, err := uc.AddProduct(ctx, 1, 100)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, "Coffee", out.Items[0].Name)

	wRepo.AssertExpectations(t)
}

func TestWishlistUsecase_RemoveProduct(t *testing.T) {
	ctx := context.Background()
	uc, wRepo, _ := newWishlistUsecase()

	wRepo.On("GetOrCreateByCustomerID", mock.Anything, int64(1)).Return(model.Wishlist{ID: 20, CustomerID: 1}, nil)
	wRepo.On("RemoveItem", mock.Anything, int64(20), int64(100)).Return(nil)
	wRepo.On("ListItems", mock.Anything, int64(20)).Return([]model.WishlistItem{}, nil)

	out, err := uc.RemoveProduct(ctx, 1, 100)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(out.Items))

	wRepo.AssertExpectations(t)
}
