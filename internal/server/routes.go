package server

import (
	"webshop/internal/config"
	"webshop/internal/handler"
	mw "webshop/internal/middleware"

	"github.com/labstack/echo/v4"
)

// 全ハンドラの束
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Category     *handler.CategoryHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	Address      *handler.AddressHandler
	Wishlist     *handler.WishlistHandler
	AdminProduct *handler.AdminProductHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminAudit   *handler.AdminAuditHandler
	Analytics    *handler.AnalyticsHandler
}

// ルート登録。公開 / JWT必須 / ADMIN専用の3段。
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	//公開
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.Category.RegisterRoutes(e)

	//JWT必須
	authed := e.Group("", mw.AuthJWT(cfg))
	h.Cart.RegisterRoutes(authed)
	h.Order.RegisterRoutes(authed)
	h.Address.RegisterRoutes(authed)
	h.Wishlist.RegisterRoutes(authed)

	//ADMIN専用
	admin := e.Group("/admin", mw.AuthJWT(cfg), mw.AdminRoleGuard())
	h.AdminProduct.RegisterRoutes(admin)
	h.AdminOrder.RegisterRoutes(admin)
	h.AdminAudit.RegisterRoutes(admin)
	h.Analytics.RegisterRoutes(admin)
}
