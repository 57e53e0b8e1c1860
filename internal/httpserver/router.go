package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	middleware "github.com/masalakitchen/storefront/pkg/middleware/auth"
)

type Deps struct {
	CartHandler     *CartHTTP
	OrderHandler    *OrderHTTP
	MenuHandler     *MenuHTTP
	AdminHandler    *AdminHTTP
	CheckoutHandler *CheckoutHTTP
	JWTSecret       []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	cart := api.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PUT("", d.CartHandler.UpdateCartItem)
	cart.DELETE("", d.CartHandler.DeleteFromCart)

	api.GET("/menu", d.MenuHandler.ListDishes)
	api.GET("/menu/:slug", d.MenuHandler.GetDish)
	api.GET("/categories", d.MenuHandler.ListCategories)
	api.GET("/search", d.MenuHandler.Search)

	api.POST("/orders", d.OrderHandler.CreateOrder)
	api.GET("/orders", d.OrderHandler.GetOrders)
	api.GET("/orders/:id", d.OrderHandler.GetOrder)
	api.GET("/orders/:id/qr", d.OrderHandler.GetOrderQR)

	api.POST("/checkout", d.CheckoutHandler.Checkout)
	api.POST("/payments/webhook", d.CheckoutHandler.PaymentWebhook)

	api.POST("/admin/login", d.AdminHandler.Login)

	authMW := middleware.NewAdminMiddleware(d.JWTSecret)
	admin := api.Group("/admin", authMW.RequireAdmin)
	admin.GET("/dishes", d.AdminHandler.ListDishes)
	admin.POST("/dishes", d.AdminHandler.CreateDish)
	admin.PUT("/dishes/:id", d.AdminHandler.UpdateDish)
	admin.DELETE("/dishes/:id", d.AdminHandler.DeleteDish)
	admin.POST("/categories", d.AdminHandler.CreateCategory)
	admin.PUT("/categories/:id", d.AdminHandler.UpdateCategory)
	admin.DELETE("/categories/:id", d.AdminHandler.DeleteCategory)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateOrderStatus)
}
