package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// 集計の読み取り専用行。金額はdecimalのまま返し、JSONでは文字列になる。

type ProductWithCategoryRow struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int64           `json:"stock"`
	Category  string          `json:"category"`
}

type CustomerOrderRow struct {
	OrderID       int64           `json:"order_id"`
	OrderDate     time.Time       `json:"order_date"`
	Status        string          `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CustomerEmail string          `json:"customer_email"`
}

type OrderDetailRow struct {
	OrderID      int64           `json:"order_id"`
	OrderDate    time.Time       `json:"order_date"`
	CustomerName string          `json:"customer_name"`
	ProductName  string          `json:"product_name"`
	Quantity     int64           `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type BestsellerRow struct {
	ProductID    int64           `json:"product_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	TotalSold    int64           `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type CustomerStatsRow struct {
	CustomerID  int64           `json:"customer_id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	TotalOrders int64           `json:"total_orders"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
}

type CategoryStatsRow struct {
	CategoryName string `json:"category_name"`
	ProductCount int64  `json:"product_count"`
	TotalStock   int64  `json:"total_stock"`
	//金額合計。平均はusecase側で件数0をガードして計算する。
	TotalPrice decimal.Decimal `json:"-"`
}

// AnalyticsRepository はカタログ・注文をまたぐ読み取り専用クエリ。
// 不変条件は持たず、正しい集計だけを約束する。
type AnalyticsRepository interface {
	ProductsWithCategories(ctx context.Context) ([]ProductWithCategoryRow, error)
	OrdersByCustomer(ctx context.Context, customerID int64) ([]CustomerOrderRow, error)
	OrderDetail(ctx context.Context, orderID int64) ([]OrderDetailRow, error)
	//売れ筋上位N件（販売数量の降順、同数は商品IDの昇順）
	Bestsellers(ctx context.Context, limit int) ([]BestsellerRow, error)
	//在庫がthreshold未満の商品
	LowStockProducts(ctx context.Context, threshold int64) ([]ProductWithCategoryRow, error)
	CustomerStats(ctx context.Context) ([]CustomerStatsRow, error)
	CategoryStats(ctx context.Context) ([]CategoryStatsRow, error)
}
