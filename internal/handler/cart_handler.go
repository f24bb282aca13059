package handler

import (
	"context"
	"net/http"

	"webshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cart の認証必須API
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

// カートのルートを登録（JWT必須のgroupに載せる）
func (h *CartHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/cart", h.get)
	g.POST("/cart/items", h.addItem)
	g.POST("/cart/items/:id/increase", h.increase)
	g.POST("/cart/items/:id/decrease", h.decrease)
	g.DELETE("/cart/items/:id", h.removeItem)
}

type addCartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

func (h *CartHandler) get(c echo.Context) error {
	customerID, ok := getCustomerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), customerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addItem(c echo.Context) error {
	customerID, ok := getCustomerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddItem(c.Request().Context(), customerID, usecase.AddCartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) increase(c echo.Context) error {
	return h.changeItem(c, h.uc.IncreaseItem)
}

func (h *CartHandler) decrease(c echo.Context) error {
	return h.changeItem(c, h.uc.DecreaseItem)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	return h.changeItem(c, h.uc.RemoveItem)
}

// 行IDを受けてカート行を操作する共通部分
func (h *CartHandler) changeItem(
	c echo.Context,
	op func(ctx context.Context, customerID int64, cartItemID int64) (usecase.CartResponse, error),
) error {
	customerID, ok := getCustomerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	itemID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := op(c.Request().Context(), customerID, itemID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
