package handler

import (
	"net/http"

	"clothco/internal/middleware"
	"clothco/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /me と保存済みカード
type ProfileHandler struct {
	profileUC *usecase.ProfileUsecase
	paymentUC *usecase.PaymentUsecase
}

// DI
func NewProfileHandler(profileUC *usecase.ProfileUsecase, paymentUC *usecase.PaymentUsecase) *ProfileHandler {
	return &ProfileHandler{profileUC: profileUC, paymentUC: paymentUC}
}

type SavePaymentMethodRequest struct {
	CardHolder string `json:"card_holder"`
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
}

func (h *ProfileHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	me := e.Group("/me", authMW)

	me.GET("", h.me)
	me.GET("/payment-methods", h.listPaymentMethods)
	me.POST("/payment-methods", h.savePaymentMethod)
	me.DELETE("/payment-methods/:id", h.deletePaymentMethod)
}

func (h *ProfileHandler) me(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.profileUC.Me(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) listPaymentMethods(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.paymentUC.List(c.Request().Context(), p.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) savePaymentMethod(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req SavePaymentMethodRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.paymentUC.Save(c.Request().Context(), p.ID, usecase.SavePaymentMethodInput{
		CardHolder: req.CardHolder,
		CardNumber: req.CardNumber,
		ExpiryDate: req.ExpiryDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProfileHandler) deletePaymentMethod(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.paymentUC.Delete(c.Request().Context(), p.ID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
