package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"
	"webshop/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAnalyticsUsecase() (*usecase.AnalyticsUsecase, *AnalyticsRepoMock, *CartRepoMock, *CartItemRepoMock, *ProductRepoMock) {
	aRepo := new(AnalyticsRepoMock)
	cartRepo := new(CartRepoMock)
	cartItemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	uc := usecase.NewAnalyticsUsecase(aRepo, cartRepo, cartItemRepo, productRepo)
	return uc, aRepo, cartRepo, cartItemRepo, productRepo
}

// 商品0件のカテゴリは平均0（ゼロ除算しない）
func TestAnalyticsUsecase_CategoryStats_ZeroProducts(t *testing.T) {
	ctx := context.Background()
	uc, aRepo, _, _, _ := newAnalyticsUsecase()

	aRepo.On("CategoryStats", mock.Anything).Return([]repo.CategoryStatsRow{
		{CategoryName: "Empty", ProductCount: 0, TotalStock: 0, TotalPrice: decimal.Zero},
		{CategoryName: "Drinks", ProductCount: 4, TotalStock: 40, TotalPrice: price("42.00")},
	}, nil)

	out, err := uc.CategoryStats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(out))
	assert.True(t, out[0].AvgPrice.IsZero())
	assert.Equal(t, "10.5", out[1].AvgPrice.String())
}

func TestAnalyticsUsecase_Bestsellers_UsesTopTen(t *testing.T) {
	ctx := context.Background()
	uc, aRepo, _, _, _ := newAnalyticsUsecase()

	aRepo.On("Bestsellers", mock.Anything, 10).Return([]repo.BestsellerRow{
		{ProductID: 1, Name: "A", TotalSold: 7, TotalRevenue: price("70.00")},
	}, nil)

	out, err := uc.Bestsellers(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out))

	aRepo.AssertExpectations(t)
}

func TestAnalyticsUsecase_LowStock_UsesThreshold(t *testing.T) {
	ctx := context.Background()
	uc, aRepo, _, _, _ := newAnalyticsUsecase()

	aRepo.On("LowStockProducts", mock.Anything, int64(10)).Return([]repo.ProductWithCategoryRow{
		{ProductID: 1, Name: "A", Stock: 3},
	}, nil)

	out, err := uc.LowStockProducts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out))

	aRepo.AssertExpectations(t)
}

// 明細の無い注文IDは404
func TestAnalyticsUsecase_OrderDetail_Empty(t *testing.T) {
	ctx := context.Background()
	uc, aRepo, _, _, _ := newAnalyticsUsecase()

	aRepo.On("OrderDetail", mock.Anything, int64(99)).Return([]repo.OrderDetailRow{}, nil)

	_, err := uc.OrderDetail(ctx, 99)
	assertHTTPError(t, err, http.StatusNotFound, "not found")
}

// カートの中身は現在価格で計算される
func TestAnalyticsUsecase_CartContents(t *testing.T) {
	ctx := context.Background()
	uc, _, cartRepo, cartItemRepo, productRepo := newAnalyticsUsecase()

	cartRepo.On("FindByCustomerID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, CustomerID: 1}, nil)
	cartItemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: 100, Quantity: 2},
	}, nil)
	productRepo.On("FindByID", mock.Anything, int64(100)).Return(model.Product{ID: 100, Name: "Coffee", Price: price("10.00"), Stock: 5}, nil)

	out, err := uc.CartContents(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.CustomerID)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, "20", out.Total.String())
}

func TestAnalyticsUsecase_CartContents_NoCart(t *testing.T) {
	ctx := context.Background()
	uc, _, cartRepo, _, _ := newAnalyticsUsecase()

	cartRepo.On("FindByCustomerID", mock.Anything, int64(1)).Return(model.Cart{}, repo.ErrNotFound)

	_, err := uc.CartContents(ctx, 1)
	assertHTTPError(t, err, http.StatusNotFound, "not found")
}
