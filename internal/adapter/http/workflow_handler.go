package http

import (
	"net/http"
	"strconv"

	mw "creditos-backoffice/internal/adapter/middleware"
	creditDomain "creditos-backoffice/internal/domain/credit"
	"creditos-backoffice/internal/usecase/workflow"

	"github.com/labstack/echo/v4"
)

type WorkflowHandler struct {
	uc     *workflow.Usecase
	states creditDomain.StateRepository
}

func NewWorkflowHandler(uc *workflow.Usecase, states creditDomain.StateRepository) *WorkflowHandler {
	return &WorkflowHandler{uc: uc, states: states}
}

// ListStates exposes the seeded workflow configuration, with each state's
// quick actions inlined.
func (h *WorkflowHandler) ListStates(c echo.Context) error {
	states, err := h.states.List(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	type stateView struct {
		creditDomain.CreditState
		Actions []creditDomain.StateAction `json:"actions"`
	}
	out := make([]stateView, 0, len(states))
	for _, s := range states {
		actions, err := h.states.ListActions(c.Request().Context(), s.ID)
		if err != nil {
			return domainError(c, err)
		}
		out = append(out, stateView{CreditState: s, Actions: actions})
	}
	return c.JSON(http.StatusOK, out)
}

type updateStatusReq struct {
	StatusID string               `json:"status_id" validate:"required"`
	Comment  string               `json:"comment"   validate:"required"`
	Tasks    []workflow.TaskInput `json:"tasks,omitempty"`
}

func (h *WorkflowHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	err := h.uc.UpdateStatus(c.Request().Context(), c.Param("credit_id"), req.StatusID, mw.Actor(c), req.Comment, req.Tasks)
	if err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type toggleSubsanacionReq struct {
	Habilitada bool `json:"habilitada"`
}

func (h *WorkflowHandler) ToggleSubsanacion(c echo.Context) error {
	var req toggleSubsanacionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	err := h.uc.ToggleSubsanacion(c.Request().Context(), c.Param("credit_id"), req.Habilitada, mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WorkflowHandler) Subsanar(c echo.Context) error {
	if err := h.uc.Subsanar(c.Request().Context(), c.Param("credit_id"), mw.Actor(c)); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WorkflowHandler) CompleteTask(c echo.Context) error {
	var req workflow.CompleteTaskInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	t, err := h.uc.CompleteTask(c.Request().Context(), c.Param("credit_id"), c.Param("task_id"), mw.Actor(c), req)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *WorkflowHandler) ExecuteStateAction(c echo.Context) error {
	actionID, err := strconv.ParseUint(c.Param("action_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid action_id"})
	}
	if err := h.uc.ExecuteStateAction(c.Request().Context(), c.Param("credit_id"), actionID, mw.Actor(c)); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
