package http

import (
	"net/http"

	"creditos-backoffice/internal/domain/reference"

	"github.com/labstack/echo/v4"
)

type ReferenceHandler struct{}

func NewReferenceHandler() *ReferenceHandler { return &ReferenceHandler{} }

// Directory returns the static lookup tables the front-end forms consume.
func (h *ReferenceHandler) Directory(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"cities":          reference.Cities,
		"banks":           reference.Banks,
		"pension_types":   reference.PensionTypes,
		"zones":           reference.Zones,
		"credit_lines":    reference.CreditLines,
		"allied_entities": reference.AlliedEntities,
	})
}
