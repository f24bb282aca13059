package repository

import (
	"context"

	repo "webshop/internal/repository"

	"gorm.io/gorm"
)

// 読み取り専用の集計クエリ。書き込みは一切しない。
type AnalyticsGormRepository struct {
	db *gorm.DB
}

func NewAnalyticsGormRepository(db *gorm.DB) *AnalyticsGormRepository {
	return &AnalyticsGormRepository{db: db}
}

func (r *AnalyticsGormRepository) ProductsWithCategories(ctx context.Context) ([]repo.ProductWithCategoryRow, error) {
	var rows []repo.ProductWithCategoryRow
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.id AS product_id, products.name, products.price, products.stock, categories.name AS category").
		Joins("join categories on categories.id = products.category_id").
		Order("products.id asc").
		Scan(&rows).Error
	if err != nil {
		return []repo.ProductWithCategoryRow{}, err
	}
	return rows, nil
}

func (r *AnalyticsGormRepository) OrdersByCustomer(ctx context.Context, customerID int64) ([]repo.CustomerOrderRow, error) {
	var rows []repo.CustomerOrderRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.id AS order_id, orders.order_date, orders.status, orders.total_amount, customers.email AS customer_email").
		Joins("join customers on customers.id = orders.customer_id").
		Where("orders.customer_id = ?", customerID).
		Order("orders.id desc").
		Scan(&rows).Error
	if err != nil {
		return []repo.CustomerOrderRow{}, err
	}
	return rows, nil
}

func (r *AnalyticsGormRepository) OrderDetail(ctx context.Context, orderID int64) ([]repo.OrderDetailRow, error) {
	var rows []repo.OrderDetailRow
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select(`orders.id AS order_id,
			orders.order_date,
			customers.first_name || ' ' || customers.last_name AS customer_name,
			order_items.product_name_snapshot AS product_name,
			order_items.quantity,
			order_items.price_per_unit,
			order_items.quantity * order_items.price_per_unit AS subtotal`).
		Joins("join orders on orders.id = order_items.order_id").
		Joins("join customers on customers.id = orders.customer_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id asc").
		Scan(&rows).Error
	if err != nil {
		return []repo.OrderDetailRow{}, err
	}
	return rows, nil
}

// 売れ筋上位。同数は商品IDの昇順で決定的に並べる。
func (r *AnalyticsGormRepository) Bestsellers(ctx context.Context, limit int) ([]repo.BestsellerRow, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []repo.BestsellerRow
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select(`products.id AS product_id,
			products.name,
			products.price,
			SUM(order_items.quantity) AS total_sold,
			SUM(order_items.quantity * order_items.price_per_unit) AS total_revenue`).
		Joins("join products on products.id = order_items.product_id").
		Group("products.id, products.name, products.price").
		Order("total_sold desc, products.id asc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return []repo.BestsellerRow{}, err
	}
	return rows, nil
}

func (r *AnalyticsGormRepository) LowStockProducts(ctx context.Context, threshold int64) ([]repo.ProductWithCategoryRow, error) {
	var rows []repo.ProductWithCategoryRow
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.id AS product_id, products.name, products.price, products.stock, categories.name AS category").
		Joins("join categories on categories.id = products.category_id").
		Where("products.stock < ?", threshold).
		Order("products.stock asc, products.id asc").
		Scan(&rows).Error
	if err != nil {
		return []repo.ProductWithCategoryRow{}, err
	}
	return rows, nil
}

func (r *AnalyticsGormRepository) CustomerStats(ctx context.Context) ([]repo.CustomerStatsRow, error) {
	var rows []repo.CustomerStatsRow
	err := r.db.WithContext(ctx).
		Table("customers").
		Select(`customers.id AS customer_id,
			customers.first_name || ' ' || customers.last_name AS name,
			customers.email,
			COUNT(orders.id) AS total_orders,
			COALESCE(SUM(orders.total_amount), 0) AS total_spent`).
		Joins("left join orders on orders.customer_id = customers.id").
		Group("customers.id, customers.first_name, customers.last_name, customers.email").
		Order("total_spent desc, customers.id asc").
		Scan(&rows).Error
	if err != nil {
		return []repo.CustomerStatsRow{}, err
	}
	return rows, nil
}

// 商品0件のカテゴリも返す（left join）。平均計算はusecase側。
func (r *AnalyticsGormRepository) CategoryStats(ctx context.Context) ([]repo.CategoryStatsRow, error) {
	var rows []repo.CategoryStatsRow
	err := r.db.WithContext(ctx).
		Table("categories").
		Select(`categories.name AS category_name,
			COUNT(products.id) AS product_count,
			COALESCE(SUM(products.stock), 0) AS total_stock,
			COALESCE(SUM(products.price), 0) AS total_price`).
		Joins("left join products on products.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("categories.id asc").
		Scan(&rows).Error
	if err != nil {
		return []repo.CategoryStatsRow{}, err
	}
	return rows, nil
}
