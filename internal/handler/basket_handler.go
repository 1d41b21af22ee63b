package handler

import (
	"net/http"

	"clothco/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /basketのHTTP
type BasketHandler struct {
	uc *usecase.BasketUsecase
}

// DI
func NewBasketHandler(uc *usecase.BasketUsecase) *BasketHandler {
	return &BasketHandler{uc: uc}
}

type AddBasketItemRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int64  `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

type UpdateSizeRequest struct {
	Size string `json:"size"`
}

// カートは1セッション分なので認証なし
func (h *BasketHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/basket")

	g.GET("", h.getBasket)
	g.DELETE("", h.clear)
	g.POST("/items", h.addItem)
	g.PATCH("/items/:id/:size", h.updateQuantity)
	g.PUT("/items/:id/:size/size", h.updateSize)
	g.DELETE("/items/:id/:size", h.removeItem)
}

func (h *BasketHandler) getBasket(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.GetBasket(c.Request().Context()))
}

func (h *BasketHandler) addItem(c echo.Context) error {
	var req AddBasketItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddItem(c.Request().Context(), usecase.AddBasketItemInput{
		ProductID: req.ProductID,
		Size:      req.Size,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *BasketHandler) updateQuantity(c echo.Context) error {
	var req UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out := h.uc.UpdateQuantity(c.Request().Context(), c.Param("id"), c.Param("size"), req.Quantity)
	return c.JSON(http.StatusOK, out)
}

func (h *BasketHandler) updateSize(c echo.Context) error {
	var req UpdateSizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateSize(c.Request().Context(), c.Param("id"), c.Param("size"), req.Size)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *BasketHandler) removeItem(c echo.Context) error {
	out := h.uc.RemoveItem(c.Request().Context(), c.Param("id"), c.Param("size"))
	return c.JSON(http.StatusOK, out)
}

func (h *BasketHandler) clear(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Clear(c.Request().Context()))
}
