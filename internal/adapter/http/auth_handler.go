package http

import (
	"net/http"

	mw "creditos-backoffice/internal/adapter/middleware"
	userDomain "creditos-backoffice/internal/domain/user"
	"creditos-backoffice/internal/usecase/users"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct{ uc *users.Usecase }

func NewAuthHandler(uc *users.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type registerReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nombre   string `json:"nombre"   validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=ADMIN GESTOR ANALISTA OPERATIVO"`
	Zona     string `json:"zona"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	// actor is nil on public self-registration
	u, err := h.uc.Register(c.Request().Context(), users.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Nombre:   req.Nombre,
		Role:     userDomain.Role(req.Role),
		Zona:     req.Zona,
	}, mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	res, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
