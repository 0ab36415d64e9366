package http

import (
	"errors"
	"net/http"

	automationDomain "creditos-backoffice/internal/domain/automation"
	creditDomain "creditos-backoffice/internal/domain/credit"
	newsDomain "creditos-backoffice/internal/domain/news"
	userDomain "creditos-backoffice/internal/domain/user"
	withdrawalDomain "creditos-backoffice/internal/domain/withdrawal"
	"creditos-backoffice/internal/usecase/permission"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// domainError maps usecase/domain errors to HTTP responses so every handler
// reports the same codes.
func domainError(c echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, permission.ErrDenied):
		code = http.StatusForbidden
	case errors.Is(err, userDomain.ErrBadCredentials):
		code = http.StatusUnauthorized
	case errors.Is(err, creditDomain.ErrNotFound),
		errors.Is(err, userDomain.ErrNotFound),
		errors.Is(err, withdrawalDomain.ErrNotFound),
		errors.Is(err, newsDomain.ErrNotFound),
		errors.Is(err, automationDomain.ErrNotFound),
		errors.Is(err, creditDomain.ErrTaskNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		code = http.StatusNotFound
	case errors.Is(err, creditDomain.ErrCommentRequired),
		errors.Is(err, creditDomain.ErrTasksRequired),
		errors.Is(err, creditDomain.ErrCompletionMismatch):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, creditDomain.ErrInvalidTransition),
		errors.Is(err, creditDomain.ErrTasksPending),
		errors.Is(err, creditDomain.ErrTaskCompleted),
		errors.Is(err, creditDomain.ErrSubsanacionDisabled),
		errors.Is(err, withdrawalDomain.ErrAlreadyResolved),
		errors.Is(err, userDomain.ErrEmailTaken):
		code = http.StatusConflict
	case errors.Is(err, creditDomain.ErrStateNotConfigured):
		code = http.StatusInternalServerError
	default:
		code = http.StatusBadRequest
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
