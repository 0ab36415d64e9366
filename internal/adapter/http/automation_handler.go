package http

import (
	"net/http"

	mw "creditos-backoffice/internal/adapter/middleware"
	automationDomain "creditos-backoffice/internal/domain/automation"
	automationUC "creditos-backoffice/internal/usecase/automation"

	"github.com/labstack/echo/v4"
)

type AutomationHandler struct{ uc *automationUC.Usecase }

func NewAutomationHandler(uc *automationUC.Usecase) *AutomationHandler {
	return &AutomationHandler{uc: uc}
}

type ruleReq struct {
	Nombre      string `json:"nombre"       validate:"required"`
	Event       string `json:"event"        validate:"required,oneof=credit_created credit_status_change comment_added user_registered withdrawal_requested"`
	TargetURL   string `json:"target_url"   validate:"required,url"`
	RoleFilter  string `json:"role_filter"  validate:"omitempty,oneof=ADMIN GESTOR ANALISTA OPERATIVO"`
	StateFilter string `json:"state_filter"`
	Active      bool   `json:"active"`
}

func (r ruleReq) input() automationUC.RuleInput {
	return automationUC.RuleInput{
		Nombre:      r.Nombre,
		Event:       automationDomain.EventType(r.Event),
		TargetURL:   r.TargetURL,
		RoleFilter:  r.RoleFilter,
		StateFilter: r.StateFilter,
		Active:      r.Active,
	}
}

func (h *AutomationHandler) Create(c echo.Context) error {
	var req ruleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.CreateRule(c.Request().Context(), req.input(), mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AutomationHandler) Update(c echo.Context) error {
	var req ruleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.UpdateRule(c.Request().Context(), c.Param("rule_id"), req.input(), mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AutomationHandler) Delete(c echo.Context) error {
	if err := h.uc.DeleteRule(c.Request().Context(), c.Param("rule_id"), mw.Actor(c)); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AutomationHandler) List(c echo.Context) error {
	out, err := h.uc.ListRules(c.Request().Context(), mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AutomationHandler) Test(c echo.Context) error {
	if err := h.uc.TestRule(c.Request().Context(), c.Param("rule_id"), mw.Actor(c)); err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "delivered"})
}
