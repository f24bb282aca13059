package usecase

import (
	"context"
	"fmt"
	"net/http"

	"webshop/internal/domain/model"
	repo "webshop/internal/repository"
)

// AdminOrderUsecase はフルフィルメント側の注文操作。
type AdminOrderUsecase struct {
	tx        repo.TransactionManager
	orderRepo repo.OrderRepository
	auditRepo repo.AuditLogRepository
	clock     Clock
}

func NewAdminOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	auditRepo repo.AuditLogRepository,
	clock Clock,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{
		tx:        tx,
		orderRepo: orderRepo,
		auditRepo: auditRepo,
		clock:     clock,
	}
}

type AdminListOrdersInput struct {
	Page       int
	Limit      int
	Status     string
	CustomerID *int64
}

type AdminOrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func (u *AdminOrderUsecase) ListOrders(ctx context.Context, adminID int64, in AdminListOrdersInput) (AdminOrderListOutput, error) {
	if adminID <= 0 {
		return AdminOrderListOutput{}, errUnauthorized()
	}
	if in.Page < 1 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if in.Status != "" && !model.OrderStatus(in.Status).IsValid() {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out AdminOrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, repo.AdminOrderListFilter{
			Page:       in.Page,
			Limit:      in.Limit,
			Status:     in.Status,
			CustomerID: in.CustomerID,
		})
		if err != nil {
			return errDB()
		}

		items := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			lines, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return errDB()
			}
			items = append(items, toOrderOutput(o, lines))
		}

		out = AdminOrderListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}
		return nil
	})

	if err != nil {
		return AdminOrderListOutput{}, err
	}
	return out, nil
}

// UpdateStatus は注文ステータスを遷移させる。
// 許可されない遷移（delivered→pending等）は拒否する。
// キャンセル時は在庫を戻し、支払い済みなら返金済みにする。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, adminID int64, orderID int64, next model.OrderStatus) (OrderOutput, error) {
	if adminID <= 0 {
		return OrderOutput{}, errUnauthorized()
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !next.IsValid() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
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

		if !o.Status.CanTransitionTo(next) {
			return NewHTTPError(http.StatusConflict,
				fmt.Sprintf("invalid status transition: %s -> %s", o.Status, next))
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, next); err != nil {
			return errDB()
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return errDB()
		}

		if next == model.OrderStatusCancelled {
			//在庫を明細ぶん戻す
			for _, it := range items {
				if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
					return errDB()
				}
			}

			//支払い済みなら返金扱いにする
			payment, err := r.Payments().FindByOrderID(ctx, orderID)
			if err == nil && payment.Status == model.PaymentStatusPaid {
				if err := r.Payments().UpdateStatus(ctx, payment.ID, model.PaymentStatusRefunded); err != nil {
					return errDB()
				}
			} else if err != nil && err != repo.ErrNotFound {
				return errDB()
			}
		}

		o.Status = next
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	//監査ログ（失敗しても本処理は戻さない）
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorCustomerID: adminID,
		Action:          model.AuditActionUpdateOrderStatus,
		ResourceType:    model.AuditResourceOrder,
		ResourceID:      orderID,
		AfterJSON:       fmt.Sprintf(`{"status":%q}`, next),
		CreatedAt:       u.clock.Now(),
	})

	return out, nil
}

// MarkShipmentShipped は配送を出荷済みにし、注文もshippedへ進める。
func (u *AdminOrderUsecase) MarkShipmentShipped(ctx context.Context, adminID int64, shipmentID int64) error {
	return u.progressShipment(ctx, adminID, shipmentID, model.ShipmentStatusShipped)
}

// MarkShipmentDelivered は配送を配達済みにし、注文もdeliveredへ進める。
func (u *AdminOrderUsecase) MarkShipmentDelivered(ctx context.Context, adminID int64, shipmentID int64) error {
	return u.progressShipment(ctx, adminID, shipmentID, model.ShipmentStatusDelivered)
}

func (u *AdminOrderUsecase) progressShipment(ctx context.Context, adminID int64, shipmentID int64, next model.ShipmentStatus) error {
	if adminID <= 0 {
		return errUnauthorized()
	}
	if shipmentID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Shipments().FindByID(ctx, shipmentID)
		if err == repo.ErrNotFound {
			return errNotFound()
		}
		if err != nil {
			return errDB()
		}

		now := u.clock.Now()

		var orderNext model.OrderStatus
		switch next {
		case model.ShipmentStatusShipped:
			if s.Status != model.ShipmentStatusPending {
				return NewHTTPError(http.StatusConflict, "invalid status transition")
			}
			if err := r.Shipments().MarkShipped(ctx, shipmentID, now); err != nil {
				return errDB()
			}
			orderNext = model.OrderStatusShipped
		case model.ShipmentStatusDelivered:
			if s.Status != model.ShipmentStatusShipped {
				return NewHTTPError(http.StatusConflict, "invalid status transition")
			}
			if err := r.Shipments().MarkDelivered(ctx, shipmentID, now); err != nil {
				return errDB()
			}
			orderNext = model.OrderStatusDelivered
		default:
			return NewHTTPError(http.StatusBadRequest, "invalid status")
		}

		//注文ステータスも同じガードを通して進める（進めない状態なら据え置き）
		o, err := r.Orders().FindByID(ctx, s.OrderID)
		if err != nil {
			return errDB()
		}
		if o.Status.CanTransitionTo(orderNext) {
			if err := r.Orders().UpdateStatus(ctx, o.ID, orderNext); err != nil {
				return errDB()
			}
		}

		return nil
	})
}
