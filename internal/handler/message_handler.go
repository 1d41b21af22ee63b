package handler

import (
	"net/http"

	"clothco/internal/domain/model"
	"clothco/internal/middleware"
	"clothco/internal/usecase"

	"github.com/labstack/echo/v4"
)

// サポートメッセージ（ユーザー側と管理者の受信箱）
type MessageHandler struct {
	uc *usecase.MessageUsecase
}

// DI
func NewMessageHandler(uc *usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

type SendMessageRequest struct {
	Message     string             `json:"message"`
	Attachments []model.Attachment `json:"attachments"`
}

type ReplyRequest struct {
	Message string `json:"message"`
}

func (h *MessageHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	me := e.Group("/me", authMW)
	me.GET("/messages", h.listMine)
	me.POST("/messages", h.send)

	admin := e.Group("/admin", authMW, middleware.AdminRoleGuard())
	admin.GET("/messages", h.adminList)
	admin.GET("/messages/:id", h.open)
	admin.POST("/messages/:id/replies", h.reply)
}

func (h *MessageHandler) send(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Send(c.Request().Context(), p, usecase.SendMessageInput{
		Message:     req.Message,
		Attachments: req.Attachments,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *MessageHandler) listMine(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMine(c.Request().Context(), p.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MessageHandler) adminList(c echo.Context) error {
	out, err := h.uc.AdminList(c.Request().Context(), c.QueryParam("filter"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MessageHandler) open(c echo.Context) error {
	out, err := h.uc.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MessageHandler) reply(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ReplyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Reply(c.Request().Context(), p, c.Param("id"), req.Message)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
