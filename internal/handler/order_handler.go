package handler

import (
	"net/http"

	"clothco/internal/middleware"
	"clothco/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// チェックアウトフォーム
type CheckoutRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	CardNumber string `json:"card_number"`
	CardExpiry string `json:"card_expiry"`
	CardCvc    string `json:"card_cvc"`
}

// チェックアウトはゲストでも可。/me/ordersはログイン必須。
func (h *OrderHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	e.POST("/checkout", h.checkout)

	me := e.Group("/me", authMW)
	me.GET("/orders", h.myOrders)

	admin := e.Group("/admin", authMW, middleware.AdminRoleGuard())
	admin.GET("/orders", h.listAll)
}

func (h *OrderHandler) checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), usecase.CheckoutInput{
		Name:       req.Name,
		Email:      req.Email,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		CardNumber: req.CardNumber,
		CardExpiry: req.CardExpiry,
		CardCvc:    req.CardCvc,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) myOrders(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orders, err := h.uc.ListByEmail(c.Request().Context(), p.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// 管理者用の全注文
func (h *OrderHandler) listAll(c echo.Context) error {
	orders, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}
