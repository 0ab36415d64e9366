package http

import (
	"fmt"
	"net/http"
	"time"

	mw "creditos-backoffice/internal/adapter/middleware"
	creditDomain "creditos-backoffice/internal/domain/credit"
	"creditos-backoffice/internal/usecase/export"

	"github.com/labstack/echo/v4"
)

type ExportHandler struct{ uc *export.Usecase }

func NewExportHandler(uc *export.Usecase) *ExportHandler { return &ExportHandler{uc: uc} }

func exportFilter(c echo.Context) creditDomain.ListFilter {
	return creditDomain.ListFilter{
		GestorID:  c.QueryParam("gestor_id"),
		AnalystID: c.QueryParam("analyst_id"),
		StatusID:  c.QueryParam("status_id"),
	}
}

func exportName(ext string) string {
	return fmt.Sprintf("creditos_%s.%s", time.Now().UTC().Format("20060102_150405"), ext)
}

func (h *ExportHandler) CSV(c echo.Context) error {
	data, err := h.uc.CSV(c.Request().Context(), exportFilter(c), mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, exportName("csv")))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *ExportHandler) XLSX(c echo.Context) error {
	data, err := h.uc.XLSX(c.Request().Context(), exportFilter(c), mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, exportName("xlsx")))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
