package http

import (
	"net/http"

	mw "creditos-backoffice/internal/adapter/middleware"
	userDomain "creditos-backoffice/internal/domain/user"
	"creditos-backoffice/internal/usecase/users"

	"github.com/labstack/echo/v4"
)

type UserHandler struct{ uc *users.Usecase }

func NewUserHandler(uc *users.Usecase) *UserHandler { return &UserHandler{uc: uc} }

func (h *UserHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Get(c echo.Context) error {
	u, err := h.uc.Get(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, mw.Actor(c))
}

type updateUserReq struct {
	Nombre      *string                  `json:"nombre,omitempty"`
	Role        *string                  `json:"role,omitempty" validate:"omitempty,oneof=ADMIN GESTOR ANALISTA OPERATIVO"`
	Zona        *string                  `json:"zona,omitempty"`
	Activo      *bool                    `json:"activo,omitempty"`
	Permissions *[]userDomain.Permission `json:"permissions,omitempty"`
}

func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	in := users.UpdateInput{
		Nombre:      req.Nombre,
		Zona:        req.Zona,
		Activo:      req.Activo,
		Permissions: req.Permissions,
	}
	if req.Role != nil {
		r := userDomain.Role(*req.Role)
		in.Role = &r
	}
	u, err := h.uc.Update(c.Request().Context(), c.Param("user_id"), in, mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
