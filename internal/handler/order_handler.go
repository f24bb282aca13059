package handler

import (
	"net/http"

	"webshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /orders の認証必須API
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/orders", h.checkout)
	g.GET("/orders", h.list)
	g.GET("/orders/:id", h.detail)
}

type checkoutAddressRequest struct {
	AddressID   int64  `json:"address_id"`
	Street      string `json:"street"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`
	MakeDefault bool   `json:"make_default"`
}

type checkoutRequest struct {
	Billing               checkoutAddressRequest `json:"billing_address"`
	ShippingSameAsBilling bool                   `json:"shipping_same_as_billing"`
	Shipping              checkoutAddressRequest `json:"shipping_address"`
	PaymentMethod         string                 `json:"payment_method"`
	Carrier               string                 `json:"carrier"`
}

func toCheckoutAddressInput(r checkoutAddressRequest) usecase.CheckoutAddressInput {
	return usecase.CheckoutAddressInput{
		AddressID:   r.AddressID,
		Street:      r.Street,
		City:        r.City,
		PostalCode:  r.PostalCode,
		Country:     r.Country,
		MakeDefault: r.MakeDefault,
	}
}

// checkoutはPOST /ordersのハンドラ。カートを注文へ変換する。
func (h *OrderHandler) checkout(c echo.Context) error {
	customerID, ok := getCustomerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// 再送対策のキー（無ければusecase側で採番）
	idemKey := c.Request().Header.Get("X-Idempotency-Key")

	out, err := h.uc.Checkout(c.Request().Context(), customerID, usecase.CheckoutInput{
		Billing:               toCheckoutAddressInput(req.Billing),
		ShippingSameAsBilling: req.ShippingSameAsBilling,
		Shipping:              toCheckoutAddressInput(req.Shipping),
		PaymentMethod:         req.PaymentMethod,
		Carrier:               req.Carrier,
		IdempotencyKey:        idemKey,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	customerID, ok := getCustomerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), customerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	customerID, ok := getCustomerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetMyOrderDetail(c.Request().Context(), customerID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
