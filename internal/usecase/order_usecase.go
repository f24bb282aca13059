package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"

	"github.com/shopspring/decimal"
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// OrderUsecase はチェックアウトと注文参照の業務ロジック。
// チェックアウトは住所作成・注文作成・在庫減算・カートクリアまでを
// 1トランザクションで行い、途中で失敗したら何も残さない。
type OrderUsecase struct {
	tx        repo.TransactionManager
	orderRepo repo.OrderRepository
	itemRepo  repo.OrderItemRepository
	idGen     IDGenerator
	clock     Clock
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	itemRepo repo.OrderItemRepository,
	idGen IDGenerator,
	clock Clock,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		idGen:     idGen,
		clock:     clock,
	}
}

// 既存住所のIDか、新規住所のどちらかを渡す。
type CheckoutAddressInput struct {
	AddressID  int64
	Street     string
	City       string
	PostalCode string
	Country    string
	//作成した住所をデフォルトに昇格させるか
	MakeDefault bool
}

type CheckoutInput struct {
	Billing CheckoutAddressInput
	//trueなら配送先は請求先と同じ
	ShippingSameAsBilling bool
	Shipping              CheckoutAddressInput

	PaymentMethod  string
	Carrier        string
	IdempotencyKey string
}

type OrderItemOutput struct {
	ProductID    int64           `json:"product_id"`
	Name         string          `json:"name"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Quantity     int64           `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type PaymentOutput struct {
	ID     int64           `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	Status string          `json:"status"`
}

type ShipmentOutput struct {
	ID             int64      `json:"id"`
	Carrier        string     `json:"carrier"`
	TrackingNumber string     `json:"tracking_number"`
	Status         string     `json:"status"`
	ShippedDate    *time.Time `json:"shipped_date"`
	DeliveryDate   *time.Time `json:"delivery_date"`
}

type OrderOutput struct {
	ID                int64             `json:"id"`
	CustomerID        int64             `json:"customer_id"`
	OrderDate         time.Time         `json:"order_date"`
	Status            string            `json:"status"`
	TotalAmount       decimal.Decimal   `json:"total_amount"`
	BillingAddressID  *int64            `json:"billing_address_id"`
	ShippingAddressID *int64            `json:"shipping_address_id"`
	Items             []OrderItemOutput `json:"items"`
	Payment           *PaymentOutput    `json:"payment,omitempty"`
	Shipments         []ShipmentOutput  `json:"shipments,omitempty"`
}

// Checkout はカートを注文に変換する。
// 前提チェックの順序：認証 → カート非空 → 在庫。最初の失敗で止まる。
func (u *OrderUsecase) Checkout(ctx context.Context, customerID int64, in CheckoutInput) (OrderOutput, error) {
	if customerID <= 0 {
		return OrderOutput{}, errUnauthorized()
	}

	method := model.PaymentMethod(strings.TrimSpace(in.PaymentMethod))
	if method != model.PaymentMethodPayPal && method != model.PaymentMethodInvoice {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment method")
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" {
		key = u.idGen.NewID()
	}
	if len(key) > 255 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら既存の注文をそのまま返す
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, customerID, key)
		if err != nil {
			return errDB()
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return errDB()
			}
			out = toOrderOutput(existing, items)
			return nil
		}

		//カートと明細。空ならempty cart。
		cart, err := r.Carts().FindByCustomerID(ctx, customerID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}
		if err != nil {
			return errDB()
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return errDB()
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		//住所解決もトランザクション内（注文が失敗したら住所も残さない）
		billingID, err := u.resolveAddress(ctx, r, customerID, in.Billing, true)
		if err != nil {
			return err
		}

		shippingID := billingID
		if !in.ShippingSameAsBilling {
			shippingID, err = u.resolveAddress(ctx, r, customerID, in.Shipping, false)
			if err != nil {
				return err
			}
		}

		//在庫を確定時に再チェックしながら減らす。
		//条件付きUPDATEなので、同時注文と取り合っても負数にはならない。
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		total := decimal.Zero

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return errNotFound()
			}
			if err != nil {
				return errDB()
			}

			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ci.ProductID, ci.Quantity)
			if err != nil {
				return errDB()
			}
			if !ok {
				return errInsufficientStock(p.Name)
			}

			//単価は今この瞬間のカタログ価格をスナップショット
			orderItems = append(orderItems, model.OrderItem{
				ProductID:           ci.ProductID,
				ProductNameSnapshot: p.Name,
				PricePerUnit:        p.Price,
				Quantity:            ci.Quantity,
			})

			total = total.Add(p.Price.Mul(decimal.NewFromInt(ci.Quantity)))
		}

		// 注文作成。合計はここで確定し、以後再計算しない。
		now := u.clock.Now()
		order := model.Order{
			CustomerID:        customerID,
			OrderDate:         now,
			Status:            model.OrderStatusPending,
			TotalAmount:       total,
			BillingAddressID:  &billingID,
			ShippingAddressID: &shippingID,
			IdempotencyKey:    key,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			//同時に同じキーが入った場合はもう一回検索して同じ結果を返す
			ex2, found2, err2 := r.Orders().FindByIdempotencyKey(ctx, customerID, key)
			if err2 == nil && found2 {
				items2, err3 := r.OrderItems().ListByOrderID(ctx, ex2.ID)
				if err3 != nil {
					return errDB()
				}
				out = toOrderOutput(ex2, items2)
				return nil
			}
			return NewHTTPError(http.StatusConflict, "idempotency conflict")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return errDB()
		}

		//支払い（pending、金額は注文合計と同じ）
		payment, err := r.Payments().Create(ctx, model.Payment{
			OrderID: orderID,
			Amount:  total,
			Method:  method,
			Status:  model.PaymentStatusPending,
		})
		if err != nil {
			return errDB()
		}

		//配送（pending、追跡番号は発行しておく）
		shipment, err := r.Shipments().Create(ctx, model.Shipment{
			OrderID:        orderID,
			Carrier:        strings.TrimSpace(in.Carrier),
			TrackingNumber: u.idGen.NewID(),
			Status:         model.ShipmentStatusPending,
		})
		if err != nil {
			return errDB()
		}

		//カートは空にする（カート行は残す）
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return errDB()
		}

		order.ID = orderID
		out = toOrderOutput(order, orderItems)
		out.Payment = &PaymentOutput{
			ID:     payment.ID,
			Amount: payment.Amount,
			Method: string(payment.Method),
			Status: string(payment.Status),
		}
		out.Shipments = []ShipmentOutput{toShipmentOutput(shipment)}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 既存住所なら所有チェック、新規なら作成（必要ならデフォルト昇格）。
func (u *OrderUsecase) resolveAddress(
	ctx context.Context,
	r repo.TxRepos,
	customerID int64,
	in CheckoutAddressInput,
	billing bool,
) (int64, error) {
	if in.AddressID > 0 {
		owned, err := r.Addresses().IsOwnedByCustomer(ctx, in.AddressID, customerID)
		if err != nil {
			return 0, errDB()
		}
		if !owned {
			return 0, errNotFound()
		}
		return in.AddressID, nil
	}

	if strings.TrimSpace(in.Street) == "" || strings.TrimSpace(in.City) == "" ||
		strings.TrimSpace(in.PostalCode) == "" || strings.TrimSpace(in.Country) == "" {
		//住所指定なし：保存済みデフォルトにフォールバック
		c, err := r.Customers().FindByID(ctx, customerID)
		if err != nil {
			return 0, errDB()
		}
		if billing && c.DefaultBillingAddressID != nil {
			return *c.DefaultBillingAddressID, nil
		}
		if !billing && c.DefaultShippingAddressID != nil {
			return *c.DefaultShippingAddressID, nil
		}
		return 0, NewHTTPError(http.StatusBadRequest, "address required")
	}

	created, err := r.Addresses().Create(ctx, model.Address{
		CustomerID: customerID,
		Street:     strings.TrimSpace(in.Street),
		City:       strings.TrimSpace(in.City),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Country:    strings.TrimSpace(in.Country),
	})
	if err != nil {
		return 0, errDB()
	}

	if in.MakeDefault {
		var setErr error
		if billing {
			setErr = r.Customers().SetDefaultBillingAddress(ctx, customerID, created.ID)
		} else {
			setErr = r.Customers().SetDefaultShippingAddress(ctx, customerID, created.ID)
		}
		if setErr != nil {
			return 0, errDB()
		}
	}

	return created.ID, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, customerID int64) ([]OrderOutput, error) {
	if customerID <= 0 {
		return []OrderOutput{}, errUnauthorized()
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByCustomerID(ctx, customerID, 1, 50)
		if err != nil {
			return errDB()
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return errDB()
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, customerID int64, orderID int64) (OrderOutput, error) {
	if customerID <= 0 {
		return OrderOutput{}, errUnauthorized()
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return errNotFound()
		}
		if err != nil {
			return errDB()
		}
		if o.CustomerID != customerID {
			//他人の注文は「存在しない扱い」にする
			return errNotFound()
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return errDB()
		}

		out = toOrderOutput(o, items)

		payment, err := r.Payments().FindByOrderID(ctx, orderID)
		if err == nil {
			out.Payment = &PaymentOutput{
				ID:     payment.ID,
				Amount: payment.Amount,
				Method: string(payment.Method),
				Status: string(payment.Status),
			}
		} else if err != repo.ErrNotFound {
			return errDB()
		}

		shipments, err := r.Shipments().ListByOrderID(ctx, orderID)
		if err != nil {
			return errDB()
		}
		for _, s := range shipments {
			out.Shipments = append(out.Shipments, toShipmentOutput(s))
		}

		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID:    it.ProductID,
			Name:         it.ProductNameSnapshot,
			PricePerUnit: it.PricePerUnit,
			Quantity:     it.Quantity,
			Subtotal:     it.Subtotal(),
		})
	}

	return OrderOutput{
		ID:                o.ID,
		CustomerID:        o.CustomerID,
		OrderDate:         o.OrderDate,
		Status:            string(o.Status),
		TotalAmount:       o.TotalAmount,
		BillingAddressID:  o.BillingAddressID,
		ShippingAddressID: o.ShippingAddressID,
		Items:             outItems,
	}
}

func toShipmentOutput(s model.Shipment) ShipmentOutput {
	return ShipmentOutput{
		ID:             s.ID,
		Carrier:        s.Carrier,
		TrackingNumber: s.TrackingNumber,
		Status:         string(s.Status),
		ShippedDate:    s.ShippedDate,
		DeliveryDate:   s.DeliveryDate,
	}
}
