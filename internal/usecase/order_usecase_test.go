package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"
	"webshop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderUsecase() (*usecase.OrderUsecase, *stubTxRepos) {
	r := newStubTxRepos()
	tx := &stubTxManager{repos: r}
	clock := &fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	uc := usecase.NewOrderUsecase(tx, r.orders, r.orderItems, &fixedIDGen{id: "fixed-key"}, clock)
	return uc, r
}

func validCheckoutInput() usecase.CheckoutInput {
	return usecase.CheckoutInput{
		Billing:               usecase.CheckoutAddressInput{AddressID: 7},
		ShippingSameAsBilling: true,
		PaymentMethod:         "invoice",
		Carrier:               "DHL",
		IdempotencyKey:        "key-1",
	}
}

func TestOrderUsecase_Checkout_Unauthorized(t *testing.T) {
	uc, _ := newOrderUsecase()

	_, err := uc.Checkout(context.Background(), 0, validCheckoutInput())
	assertHTTPError(t, err, http.StatusUnauthorized, "unauthorized")
}

func TestOrderUsecase_Checkout_InvalidPaymentMethod(t *testing.T) {
	uc, _ := newOrderUsecase()

	in := validCheckoutInput()
	in.PaymentMethod = "bitcoin"

	_, err := uc.Checkout(context.Background(), 1, in)
	assertHTTPError(t, err, http.StatusBadRequest, "invalid payment method")
}

// カートが無い・空の場合はcart empty
func TestOrderUsecase_Checkout_EmptyCart(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	r.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").Return(model.Order{}, false, nil)
	r.carts.On("FindByCustomerID", mock.Anything, int64(1)).Return(model.Cart{ID: 10}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{}, nil)

	_, err := uc.Checkout(ctx, 1, validCheckoutInput())
	assertHTTPError(t, err, http.StatusBadRequest, "cart empty")

	r.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 成功時：合計は確定時点の価格×数量、支払い・配送も同時に作られ、カートは空になる
func TestOrderUsecase_Checkout_Success(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	r.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").Return(model.Order{}, false, nil)
	r.carts.On("FindByCustomerID", mock.Anything, int64(1)).Return(model.Cart{ID: 10}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: 100, Quantity: 2},
		{ID: 2, CartID: 10, ProductID: 200, Quantity: 1},
	}, nil)
	r.addresses.On("IsOwnedByCustomer", mock.Anything, int64(7), int64(1)).Return(true, nil)

	r.products.On("FindByID", mock.Anything, int64(100)).Return(model.Product{ID: 100, Name: "A", Price: price("10.00"), Stock: 5}, nil)
	r.products.On("FindByID", mock.Anything, int64(200)).Return(model.Product{ID: 200, Name: "B", Price: price("20.00"), Stock: 1}, nil)
	r.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(100), int64(2)).Return(true, nil)
	r.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(200), int64(1)).Return(true, nil)

	r.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.CustomerID == 1 &&
			o.Status == model.OrderStatusPending &&
			o.TotalAmount.Equal(price("40.00")) &&
			o.IdempotencyKey == "key-1"
	})).Return(int64(500), nil)

	r.orderItems.On("CreateBulk", mock.Anything, int64(500), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 &&
			items[0].ProductNameSnapshot == "A" && items[0].PricePerUnit.Equal(price("10.00")) &&
			items[1].ProductNameSnapshot == "B" && items[1].PricePerUnit.Equal(price("20.00"))
	})).Return(nil)

	r.payments.On("Create", mock.Anything, mock.MatchedBy(func(p model.Payment) bool {
		return p.OrderID == 500 &&
			p.Amount.Equal(price("40.00")) &&
			p.Method == model.PaymentMethodInvoice &&
			p.Status == model.PaymentStatusPending
	})).Return(model.Payment{ID: 900, OrderID: 500, Amount: price("40.00"), Method: model.PaymentMethodInvoice, Status: model.PaymentStatusPending}, nil)

	r.shipments.On("Create", mock.Anything, mock.MatchedBy(func(s model.Shipment) bool {
		return s.OrderID == 500 && s.Carrier == "DHL" && s.Status == model.ShipmentStatusPending && s.TrackingNumber != ""
	})).Return(model.Shipment{ID: 800, OrderID: 500, Carrier: "DHL", TrackingNumber: "fixed-key", Status: model.ShipmentStatusPending}, nil)

	r.carts.On("Clear", mock.Anything, int64(10)).Return(nil)

	out, err := uc.Checkout(ctx, 1, validCheckoutInput())
	assert.NoError(t, err)
	assert.Equal(t, int64(500), out.ID)
	assert.Equal(t, "pending", out.Status)
	assert.True(t, out.TotalAmount.Equal(price("40.00")))
	assert.Equal(t, 2, len(out.Items))
	assert.Equal(t, "20", out.Items[0].Subtotal.String())
	assert.NotNil(t, out.Payment)
	assert.Equal(t, "pending", out.Payment.Status)
	assert.Equal(t, 1, len(out.Shipments))

	r.orders.AssertExpectations(t)
	r.carts.AssertExpectations(t)
	r.inventory.AssertExpectations(t)
}

// いずれかの商品の在庫が足りなければ注文は作られず、カートも残る
func TestOrderUsecase_Checkout_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	r.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").Return(model.Order{}, false, nil)
	r.carts.On("FindByCustomerID", mock.Anything, int64(1)).Return(model.Cart{ID: 10}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: 100, Quantity: 3},
	}, nil)
	r.addresses.On("IsOwnedByCustomer", mock.Anything, int64(7), int64(1)).Return(true, nil)
	r.products.On("FindByID", mock.Anything, int64(100)).Return(model.Product{ID: 100, Name: "A", Price: price("10.00"), Stock: 2}, nil)
	//同時注文に負けた側の分岐もこの戻り値で表現できる
	r.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(100), int64(3)).Return(false, nil)

	_, err := uc.Checkout(ctx, 1, validCheckoutInput())
	assertHTTPError(t, err, http.StatusConflict, "insufficient stock for A")

	r.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	r.carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

// 同じキーでの再送は既存の注文をそのまま返す
func TestOrderUsecase_Checkout_IdempotentReplay(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	existing := model.Order{
		ID:          500,
		CustomerID:  1,
		Status:      model.OrderStatusPending,
		TotalAmount: price("40.00"),
	}
	r.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").Return(existing, true, nil)
	r.orderItems.On("ListByOrderID", mock.Anything, int64(500)).Return([]model.OrderItem{
		{OrderID: 500, ProductID: 100, ProductNameSnapshot: "A", PricePerUnit: price("10.00"), Quantity: 2},
	}, nil)

	out, err := uc.Checkout(ctx, 1, validCheckoutInput())
	assert.NoError(t, err)
	assert.Equal(t, int64(500), out.ID)

	//在庫もカートも二重処理されない
	r.inventory.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
	r.carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	r.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// キー未指定はサーバ側で採番する
func TestOrderUsecase_Checkout_GeneratesKeyWhenMissing(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	in := validCheckoutInput()
	in.IdempotencyKey = ""

	r.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "fixed-key").Return(model.Order{}, false, nil)
	r.carts.On("FindByCustomerID", mock.Anything, int64(1)).Return(model.Cart{ID: 10}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{}, nil)

	_, err := uc.Checkout(ctx, 1, in)
	assertHTTPError(t, err, http.StatusBadRequest, "cart empty")

	r.orders.AssertExpectations(t)
}

// 住所未指定はデフォルト住所にフォールバック
func TestOrderUsecase_Checkout_FallsBackToDefaultAddress(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	in := validCheckoutInput()
	in.Billing = usecase.CheckoutAddressInput{}

	defaultBilling := int64(42)

	r.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").Return(model.Order{}, false, nil)
	r.carts.On("FindByCustomerID", mock.Anything, int64(1)).Return(model.Cart{ID: 10}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: 100, Quantity: 1},
	}, nil)
	r.customers.On("FindByID", mock.Anything, int64(1)).Return(model.Customer{ID: 1, DefaultBillingAddressID: &defaultBilling}, nil)

	r.products.On("FindByID", mock.Anything, int64(100)).Return(model.Product{ID: 100, Name: "A", Price: price("10.00"), Stock: 5}, nil)
	r.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(100), int64(1)).Return(true, nil)

	r.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.BillingAddressID != nil && *o.BillingAddressID == 42 &&
			o.ShippingAddressID != nil && *o.ShippingAddressID == 42
	})).Return(int64(501), nil)
	r.orderItems.On("CreateBulk", mock.Anything, int64(501), mock.Anything).Return(nil)
	r.payments.On("Create", mock.Anything, mock.Anything).Return(model.Payment{ID: 901}, nil)
	r.shipments.On("Create", mock.Anything, mock.Anything).Return(model.Shipment{ID: 801}, nil)
	r.carts.On("Clear", mock.Anything, int64(10)).Return(nil)

	out, err := uc.Checkout(ctx, 1, in)
	assert.NoError(t, err)
	assert.Equal(t, int64(501), out.ID)

	r.orders.AssertExpectations(t)
}

func TestOrderUsecase_GetMyOrderDetail_OtherCustomer(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	r.orders.On("FindByID", mock.Anything, int64(500)).Return(model.Order{ID: 500, CustomerID: 2}, nil)

	_, err := uc.GetMyOrderDetail(ctx, 1, 500)
	assertHTTPError(t, err, http.StatusNotFound, "not found")
}

func TestOrderUsecase_GetMyOrderDetail_Success(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	r.orders.On("FindByID", mock.Anything, int64(500)).Return(model.Order{ID: 500, CustomerID: 1, Status: model.OrderStatusPending, TotalAmount: price("40.00")}, nil)
	r.orderItems.On("ListByOrderID", mock.Anything, int64(500)).Return([]model.OrderItem{
		{OrderID: 500, ProductID: 100, ProductNameSnapshot: "A", PricePerUnit: price("10.00"), Quantity: 2},
	}, nil)
	r.payments.On("FindByOrderID", mock.Anything, int64(500)).Return(model.Payment{ID: 900, Status: model.PaymentStatusPending, Amount: price("40.00"), Method: model.PaymentMethodInvoice}, nil)
	r.shipments.On("ListByOrderID", mock.Anything, int64(500)).Return([]model.Shipment{
		{ID: 800, OrderID: 500, Status: model.ShipmentStatusPending},
	}, nil)

	out, err := uc.GetMyOrderDetail(ctx, 1, 500)
	assert.NoError(t, err)
	assert.Equal(t, int64(500), out.ID)
	assert.NotNil(t, out.Payment)
	assert.Equal(t, 1, len(out.Shipments))
	//明細の小計はスナップショット単価から
	assert.Equal(t, "20", out.Items[0].Subtotal.String())
}

func TestOrderUsecase_ListMyOrders(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	r.orders.On("ListByCustomerID", mock.Anything, int64(1), 1, 50).Return([]model.Order{
		{ID: 500, CustomerID: 1, Status: model.OrderStatusPending},
	}, int64(1), nil)
	r.orderItems.On("ListByOrderID", mock.Anything, int64(500)).Return([]model.OrderItem{}, nil)

	out, err := uc.ListMyOrders(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out))

	r.orders.AssertExpectations(t)
}

func TestOrderUsecase_ListMyOrders_Empty(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	r.orders.On("ListByCustomerID", mock.Anything, int64(1), 1, 50).Return([]model.Order{}, int64(0), nil)

	out, err := uc.ListMyOrders(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(out))
}

// カート行自体が無い場合もcart empty扱い
func TestOrderUsecase_Checkout_CartMissing(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	r.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").Return(model.Order{}, false, nil)
	r.carts.On("FindByCustomerID", mock.Anything, int64(1)).Return(model.Cart{}, repo.ErrNotFound)

	_, err := uc.Checkout(ctx, 1, validCheckoutInput())
	assertHTTPError(t, err, http.StatusBadRequest, "cart empty")
}
