package usecase_test

import (
	"context"
	"testing"
	"time"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"
	"webshop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepoMock) IsReferencedByOrderItem(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Category)
	return created, args.Error(1)
}

func (m *CategoryRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CategoryRepoMock) HasProducts(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) FindByEmail(ctx context.Context, email string) (model.Customer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *CustomerRepoMock) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Customer)
	return created, args.Error(1)
}

func (m *CustomerRepoMock) SetDefaultBillingAddress(ctx context.Context, customerID int64, addressID int64) error {
	args := m.Called(ctx, customerID, addressID)
	return args.Error(0)
}

func (m *CustomerRepoMock) SetDefaultShippingAddress(ctx context.Context, customerID int64, addressID int64) error {
	args := m.Called(ctx, customerID, addressID)
	return args.Error(0)
}

type AddressRepoMock struct{ mock.Mock }

func (m *AddressRepoMock) ListByCustomerID(ctx context.Context, customerID int64) ([]model.Address, error) {
	args := m.Called(ctx, customerID)
	items, _ := args.Get(0).([]model.Address)
	return items, args.Error(1)
}

func (m *AddressRepoMock) FindByID(ctx context.Context, addressID int64) (model.Address, error) {
	args := m.Called(ctx, addressID)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

func (m *AddressRepoMock) Create(ctx context.Context, a model.Address) (model.Address, error) {
	args := m.Called(ctx, a)
	created, _ := args.Get(0).(model.Address)
	return created, args.Error(1)
}

func (m *AddressRepoMock) Update(ctx context.Context, a model.Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *AddressRepoMock) DeleteByID(ctx context.Context, addressID int64) error {
	args := m.Called(ctx, addressID)
	return args.Error(0)
}

func (m *AddressRepoMock) IsOwnedByCustomer(ctx context.Context, addressID int64, customerID int64) (bool, error) {
	args := m.Called(ctx, addressID, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *AddressRepoMock) IsReferencedByOrder(ctx context.Context, addressID int64) (bool, error) {
	args := m.Called(ctx, addressID)
	return args.Bool(0), args.Error(1)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateByCustomerID(ctx context.Context, customerID int64) (model.Cart, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByCustomerID(ctx context.Context, customerID int64) (model.Cart, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) Clear(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, productID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) Create(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(model.CartItem)
	return created, args.Error(1)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) IsOwnedByCustomer(ctx context.Context, cartItemID int64, customerID int64) (bool, error) {
	args := m.Called(ctx, cartItemID, customerID)
	return args.Bool(0), args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, customerID, page, limit)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByIdempotencyKey(ctx context.Context, customerID int64, key string) (model.Order, bool, error) {
	args := m.Called(ctx, customerID, key)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Payment)
	return created, args.Error(1)
}

func (m *PaymentRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error) {
	args := m.Called(ctx, orderID)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Error(1)
}

func (m *PaymentRepoMock) UpdateStatus(ctx context.Context, paymentID int64, status model.PaymentStatus) error {
	args := m.Called(ctx, paymentID, status)
	return args.Error(0)
}

type ShipmentRepoMock struct{ mock.Mock }

func (m *ShipmentRepoMock) Create(ctx context.Context, s model.Shipment) (model.Shipment, error) {
	args := m.Called(ctx, s)
	created, _ := args.Get(0).(model.Shipment)
	return created, args.Error(1)
}

func (m *ShipmentRepoMock) FindByID(ctx context.Context, shipmentID int64) (model.Shipment, error) {
	args := m.Called(ctx, shipmentID)
	s, _ := args.Get(0).(model.Shipment)
	return s, args.Error(1)
}

func (m *ShipmentRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.Shipment, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.Shipment)
	return items, args.Error(1)
}

func (m *ShipmentRepoMock) MarkShipped(ctx context.Context, shipmentID int64, at time.Time) error {
	args := m.Called(ctx, shipmentID, at)
	return args.Error(0)
}

func (m *ShipmentRepoMock) MarkDelivered(ctx context.Context, shipmentID int64, at time.Time) error {
	args := m.Called(ctx, shipmentID, at)
	return args.Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.AuditLog)
	return items, args.Error(1)
}

type AnalyticsRepoMock struct{ mock.Mock }

func (m *AnalyticsRepoMock) ProductsWithCategories(ctx context.Context) ([]repo.ProductWithCategoryRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.ProductWithCategoryRow)
	return rows, args.Error(1)
}

func (m *AnalyticsRepoMock) OrdersByCustomer(ctx context.Context, customerID int64) ([]repo.CustomerOrderRow, error) {
	args := m.Called(ctx, customerID)
	rows, _ := args.Get(0).([]repo.CustomerOrderRow)
	return rows, args.Error(1)
}

func (m *AnalyticsRepoMock) OrderDetail(ctx context.Context, orderID int64) ([]repo.OrderDetailRow, error) {
	args := m.Called(ctx, orderID)
	rows, _ := args.Get(0).([]repo.OrderDetailRow)
	return rows, args.Error(1)
}

func (m *AnalyticsRepoMock) Bestsellers(ctx context.Context, limit int) ([]repo.BestsellerRow, error) {
	args := m.Called(ctx, limit)
	rows, _ := args.Get(0).([]repo.BestsellerRow)
	return rows, args.Error(1)
}

func (m *AnalyticsRepoMock) LowStockProducts(ctx context.Context, threshold int64) ([]repo.ProductWithCategoryRow, error) {
	args := m.Called(ctx, threshold)
	rows, _ := args.Get(0).([]repo.ProductWithCategoryRow)
	return rows, args.Error(1)
}

func (m *AnalyticsRepoMock) CustomerStats(ctx context.Context) ([]repo.CustomerStatsRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.CustomerStatsRow)
	return rows, args.Error(1)
}

func (m *AnalyticsRepoMock) CategoryStats(ctx context.Context) ([]repo.CategoryStatsRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.CategoryStatsRow)
	return rows, args.Error(1)
}

type WishlistRepoMock struct{ mock.Mock }

func (m *WishlistRepoMock) GetOrCreateByCustomerID(ctx context.Context, customerID int64) (model.Wishlist, error) {
	args := m.Called(ctx, customerID)
	w, _ := args.Get(0).(model.Wishlist)
	return w, args.Error(1)
}

func (m *WishlistRepoMock) ListItems(ctx context.Context, wishlistID int64) ([]model.WishlistItem, error) {
	args := m.Called(ctx, wishlistID)
	items, _ := args.Get(0).([]model.WishlistItem)
	return items, args.Error(1)
}

func (m *WishlistRepoMock) AddItem(ctx context.Context, wishlistID int64, productID int64) error {
	args := m.Called(ctx, wishlistID, productID)
	return args.Error(0)
}

func (m *WishlistRepoMock) RemoveItem(ctx context.Context, wishlistID int64, productID int64) error {
	args := m.Called(ctx, wishlistID, productID)
	return args.Error(0)
}

// =====================
// トランザクションのスタブ
// =====================

// stubTxReposはモック一式をTxReposとして見せる。
type stubTxRepos struct {
	customers  *CustomerRepoMock
	addresses  *AddressRepoMock
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	payments   *PaymentRepoMock
	shipments  *ShipmentRepoMock
	carts      *CartRepoMock
	cartItems  *CartItemRepoMock
	inventory  *InventoryRepoMock
	products   *ProductRepoMock
}

func newStubTxRepos() *stubTxRepos {
	return &stubTxRepos{
		customers:  new(CustomerRepoMock),
		addresses:  new(AddressRepoMock),
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		payments:   new(PaymentRepoMock),
		shipments:  new(ShipmentRepoMock),
		carts:      new(CartRepoMock),
		cartItems:  new(CartItemRepoMock),
		inventory:  new(InventoryRepoMock),
		products:   new(ProductRepoMock),
	}
}

func (s *stubTxRepos) Customers() repo.CustomerRepository   { return s.customers }
func (s *stubTxRepos) Addresses() repo.AddressRepository    { return s.addresses }
func (s *stubTxRepos) Orders() repo.OrderRepository         { return s.orders }
func (s *stubTxRepos) OrderItems() repo.OrderItemRepository { return s.orderItems }
func (s *stubTxRepos) Payments() repo.PaymentRepository     { return s.payments }
func (s *stubTxRepos) Shipments() repo.ShipmentRepository   { return s.shipments }
func (s *stubTxRepos) Carts() repo.CartRepository           { return s.carts }
func (s *stubTxRepos) CartItems() repo.CartItemRepository   { return s.cartItems }
func (s *stubTxRepos) Inventory() repo.InventoryRepository  { return s.inventory }
func (s *stubTxRepos) Products() repo.ProductRepository     { return s.products }

// stubTxManagerはトランザクションを張らずにfnを直接呼ぶ。
type stubTxManager struct {
	repos *stubTxRepos
}

func (m *stubTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

// =====================
// テスト用の時計とID
// =====================

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

type fixedIDGen struct{ id string }

func (g *fixedIDGen) NewID() string { return g.id }

// HTTPErrorのステータスとメッセージを確認する。
func assertHTTPError(t *testing.T, err error, status int, contains string) {
	t.Helper()
	assert.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
		assert.Contains(t, he.Message, contains)
	}
}
