package handler

import (
	"net/http"

	"webshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 集計の読み取り専用API（ADMIN専用）
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUsecase
}

// DI
func NewAnalyticsHandler(uc *usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// ADMIN groupに載せる
func (h *AnalyticsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/analytics/products", h.productsWithCategories)
	g.GET("/analytics/customers/:id/orders", h.ordersByCustomer)
	g.GET("/analytics/orders/:id", h.orderDetail)
	g.GET("/analytics/customers/:id/cart", h.cartContents)
	g.GET("/analytics/bestsellers", h.bestsellers)
	g.GET("/analytics/low-stock", h.lowStock)
	g.GET("/analytics/customer-stats", h.customerStats)
	g.GET("/analytics/category-stats", h.categoryStats)
}

func (h *AnalyticsHandler) productsWithCategories(c echo.Context) error {
	out, err := h.uc.ProductsWithCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsHandler) ordersByCustomer(c echo.Context) error {
	customerID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.OrdersByCustomer(c.Request().Context(), customerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsHandler) orderDetail(c echo.Context) error {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.OrderDetail(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsHandler) cartContents(c echo.Context) error {
	customerID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.CartContents(c.Request().Context(), customerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsHandler) bestsellers(c echo.Context) error {
	out, err := h.uc.Bestsellers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsHandler) lowStock(c echo.Context) error {
	out, err := h.uc.LowStockProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsHandler) customerStats(c echo.Context) error {
	out, err := h.uc.CustomerStats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsHandler) categoryStats(c echo.Context) error {
	out, err := h.uc.CategoryStats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
