package http

import (
	"net/http"

	mw "creditos-backoffice/internal/adapter/middleware"
	newsUC "creditos-backoffice/internal/usecase/news"

	"github.com/labstack/echo/v4"
)

type NewsHandler struct{ uc *newsUC.Usecase }

func NewNewsHandler(uc *newsUC.Usecase) *NewsHandler { return &NewsHandler{uc: uc} }

type newsReq struct {
	Titulo string `json:"titulo" validate:"required"`
	Cuerpo string `json:"cuerpo" validate:"required"`
}

func (h *NewsHandler) Create(c echo.Context) error {
	var req newsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.Create(c.Request().Context(), req.Titulo, req.Cuerpo, mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *NewsHandler) Update(c echo.Context) error {
	var req newsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.Update(c.Request().Context(), c.Param("item_id"), req.Titulo, req.Cuerpo, mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *NewsHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("item_id"), mw.Actor(c)); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NewsHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
