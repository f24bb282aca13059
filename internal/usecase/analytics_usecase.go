package usecase

import (
	"context"

	repo "webshop/internal/repository"

	"github.com/shopspring/decimal"
)

// 売れ筋の件数と低在庫のしきい値。
const (
	bestsellerLimit   = 10
	lowStockThreshold = 10
)

// AnalyticsUsecase は読み取り専用の集計。何も書き込まない。
type AnalyticsUsecase struct {
	analyticsRepo repo.AnalyticsRepository
	cartRepo      repo.CartRepository
	cartItemRepo  repo.CartItemRepository
	productRepo   repo.ProductRepository
}

func NewAnalyticsUsecase(
	analyticsRepo repo.AnalyticsRepository,
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *AnalyticsUsecase {
	return &AnalyticsUsecase{
		analyticsRepo: analyticsRepo,
		cartRepo:      cartRepo,
		cartItemRepo:  cartItemRepo,
		productRepo:   productRepo,
	}
}

func (u *AnalyticsUsecase) ProductsWithCategories(ctx context.Context) ([]repo.ProductWithCategoryRow, error) {
	rows, err := u.analyticsRepo.ProductsWithCategories(ctx)
	if err != nil {
		return nil, errDB()
	}
	return rows, nil
}

func (u *AnalyticsUsecase) OrdersByCustomer(ctx context.Context, customerID int64) ([]repo.CustomerOrderRow, error) {
	if customerID <= 0 {
		return nil, errNotFound()
	}
	rows, err := u.analyticsRepo.OrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, errDB()
	}
	return rows, nil
}

func (u *AnalyticsUsecase) OrderDetail(ctx context.Context, orderID int64) ([]repo.OrderDetailRow, error) {
	if orderID <= 0 {
		return nil, errNotFound()
	}
	rows, err := u.analyticsRepo.OrderDetail(ctx, orderID)
	if err != nil {
		return nil, errDB()
	}
	if len(rows) == 0 {
		return nil, errNotFound()
	}
	return rows, nil
}

type CartContentsItem struct {
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type CartContentsOutput struct {
	CustomerID int64              `json:"customer_id"`
	Items      []CartContentsItem `json:"items"`
	Total      decimal.Decimal    `json:"total"`
}

// CartContents は指定会員のカート内容（現在価格で計算）。
func (u *AnalyticsUsecase) CartContents(ctx context.Context, customerID int64) (CartContentsOutput, error) {
	if customerID <= 0 {
		return CartContentsOutput{}, errNotFound()
	}

	cart, err := u.cartRepo.FindByCustomerID(ctx, customerID)
	if err == repo.ErrNotFound {
		return CartContentsOutput{}, errNotFound()
	}
	if err != nil {
		return CartContentsOutput{}, errDB()
	}

	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartContentsOutput{}, errDB()
	}

	out := CartContentsOutput{
		CustomerID: customerID,
		Items:      make([]CartContentsItem, 0, len(items)),
		Total:      decimal.Zero,
	}

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}
		subtotal := p.Price.Mul(decimal.NewFromInt(it.Quantity))
		out.Items = append(out.Items, CartContentsItem{
			ProductName: p.Name,
			Price:       p.Price,
			Quantity:    it.Quantity,
			Subtotal:    subtotal,
		})
		out.Total = out.Total.Add(subtotal)
	}

	return out, nil
}

func (u *AnalyticsUsecase) Bestsellers(ctx context.Context) ([]repo.BestsellerRow, error) {
	rows, err := u.analyticsRepo.Bestsellers(ctx, bestsellerLimit)
	if err != nil {
		return nil, errDB()
	}
	return rows, nil
}

func (u *AnalyticsUsecase) LowStockProducts(ctx context.Context) ([]repo.ProductWithCategoryRow, error) {
	rows, err := u.analyticsRepo.LowStockProducts(ctx, lowStockThreshold)
	if err != nil {
		return nil, errDB()
	}
	return rows, nil
}

func (u *AnalyticsUsecase) CustomerStats(ctx context.Context) ([]repo.CustomerStatsRow, error) {
	rows, err := u.analyticsRepo.CustomerStats(ctx)
	if err != nil {
		return nil, errDB()
	}
	return rows, nil
}

type CategoryStatsOutput struct {
	CategoryName string          `json:"category_name"`
	ProductCount int64           `json:"product_count"`
	TotalStock   int64           `json:"total_stock"`
	AvgPrice     decimal.Decimal `json:"avg_price"`
}

// CategoryStats は平均価格をここで計算する。
// 商品0件のカテゴリは平均0（ゼロ除算はしない）。
func (u *AnalyticsUsecase) CategoryStats(ctx context.Context) ([]CategoryStatsOutput, error) {
	rows, err := u.analyticsRepo.CategoryStats(ctx)
	if err != nil {
		return nil, errDB()
	}

	out := make([]CategoryStatsOutput, 0, len(rows))
	for _, row := range rows {
		avg := decimal.Zero
		if row.ProductCount > 0 {
			avg = row.TotalPrice.Div(decimal.NewFromInt(row.ProductCount)).Round(2)
		}
		out = append(out, CategoryStatsOutput{
			CategoryName: row.CategoryName,
			ProductCount: row.ProductCount,
			TotalStock:   row.TotalStock,
			AvgPrice:     avg,
		})
	}

	return out, nil
}
