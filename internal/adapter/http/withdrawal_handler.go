package http

import (
	"net/http"

	mw "creditos-backoffice/internal/adapter/middleware"
	"creditos-backoffice/internal/usecase/withdrawal"

	"github.com/labstack/echo/v4"
)

type WithdrawalHandler struct{ uc *withdrawal.Usecase }

func NewWithdrawalHandler(uc *withdrawal.Usecase) *WithdrawalHandler {
	return &WithdrawalHandler{uc: uc}
}

type requestWithdrawalReq struct {
	CreditIDs []string `json:"credit_ids" validate:"required,min=1,dive,hex32"`
}

func (h *WithdrawalHandler) Request(c echo.Context) error {
	var req requestWithdrawalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.Request(c.Request().Context(), req.CreditIDs, mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

type resolveWithdrawalReq struct {
	Aprobar bool   `json:"aprobar"`
	Nota    string `json:"nota,omitempty"`
}

func (h *WithdrawalHandler) Resolve(c echo.Context) error {
	var req resolveWithdrawalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	out, err := h.uc.Resolve(c.Request().Context(), c.Param("request_id"), req.Aprobar, req.Nota, mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WithdrawalHandler) ListMine(c echo.Context) error {
	out, err := h.uc.ListMine(c.Request().Context(), mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WithdrawalHandler) ListPending(c echo.Context) error {
	out, err := h.uc.ListPending(c.Request().Context(), mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
