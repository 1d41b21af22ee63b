package server

import (
	"clothco/internal/handler"

	"github.com/labstack/echo/v4"
)

// main.goで組み立てたハンドラ一式
type Handlers struct {
	Product      *handler.ProductHandler
	AdminProduct *handler.AdminProductHandler
	Basket       *handler.BasketHandler
	Order        *handler.OrderHandler
	Auth         *handler.AuthHandler
	Profile      *handler.ProfileHandler
	Message      *handler.MessageHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers, authMW echo.MiddlewareFunc) {
	h.Product.RegisterRoutes(e)
	h.Basket.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)
	h.Order.RegisterRoutes(e, authMW)
	h.Profile.RegisterRoutes(e, authMW)
	h.Message.RegisterRoutes(e, authMW)
	h.AdminProduct.RegisterRoutes(e, authMW)
}
