package handler

import (
	"context"
	"net/http"
	"strconv"

	"webshop/internal/domain/model"
	"webshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/orders のADMIN専用API
type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

// DI
func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

// ADMIN groupに載せる
func (h *AdminOrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.list)
	g.PATCH("/orders/:id/status", h.updateStatus)
	g.POST("/shipments/:id/ship", h.markShipped)
	g.POST("/shipments/:id/deliver", h.markDelivered)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	adminID, ok := getCustomerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	var customerID *int64
	if v := c.QueryParam("customer_id"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer_id"})
		}
		customerID = &x
	}

	out, err := h.uc.ListOrders(c.Request().Context(), adminID, usecase.AdminListOrdersInput{
		Page:       page,
		Limit:      limit,
		Status:     c.QueryParam("status"),
		CustomerID: customerID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// updateStatusはPATCH /admin/orders/:id/statusのハンドラ。
// 許可された遷移だけ通す（pending→processing→shipped→delivered、途中cancel可）。
func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	adminID, ok := getCustomerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), adminID, orderID, model.OrderStatus(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) markShipped(c echo.Context) error {
	return h.progress(c, h.uc.MarkShipmentShipped)
}

func (h *AdminOrderHandler) markDelivered(c echo.Context) error {
	return h.progress(c, h.uc.MarkShipmentDelivered)
}

func (h *AdminOrderHandler) progress(
	c echo.Context,
	op func(ctx context.Context, adminID int64, shipmentID int64) error,
) error {
	adminID, ok := getCustomerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	shipmentID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := op(c.Request().Context(), adminID, shipmentID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
