package http

import (
	"context"
	"io"
	"net/http"

	mw "creditos-backoffice/internal/adapter/middleware"
	creditDomain "creditos-backoffice/internal/domain/credit"
	creditUC "creditos-backoffice/internal/usecase/credit"

	"github.com/labstack/echo/v4"
)

// FileStore abstracts the object storage client so handler tests can fake
// uploads. The MinIO store in infrastructure/storage satisfies it.
type FileStore interface {
	Upload(ctx context.Context, fileName, contentType string, data []byte) (url, key string, err error)
}

type CreditHandler struct {
	uc    *creditUC.Usecase
	files FileStore
}

func NewCreditHandler(uc *creditUC.Usecase, files FileStore) *CreditHandler {
	return &CreditHandler{uc: uc, files: files}
}

type createCreditReq struct {
	Linea         string                     `json:"linea"          validate:"required"`
	Monto         float64                    `json:"monto"          validate:"required,gte=1,intlike"`
	Plazo         int                        `json:"plazo"          validate:"required,gte=1,lte=144"`
	EntidadAliada string                     `json:"entidad_aliada" validate:"required"`
	Cliente       creditDomain.ClientProfile `json:"cliente"`
}

func (h *CreditHandler) Create(c echo.Context) error {
	var req createCreditReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.Create(c.Request().Context(), creditUC.CreateInput{
		Linea:         req.Linea,
		Monto:         req.Monto,
		Plazo:         req.Plazo,
		EntidadAliada: req.EntidadAliada,
		Cliente:       req.Cliente,
	}, mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CreditHandler) List(c echo.Context) error {
	f := creditDomain.ListFilter{
		GestorID:  c.QueryParam("gestor_id"),
		AnalystID: c.QueryParam("analyst_id"),
		StatusID:  c.QueryParam("status_id"),
	}
	out, err := h.uc.List(c.Request().Context(), f, mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CreditHandler) Get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("credit_id"), mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CreditHandler) UpdateData(c echo.Context) error {
	var req creditUC.UpdateDataInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	out, err := h.uc.UpdateData(c.Request().Context(), c.Param("credit_id"), req, mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type assignAnalystReq struct {
	AnalystID string `json:"analyst_id" validate:"required,hex32"`
}

func (h *CreditHandler) AssignAnalyst(c echo.Context) error {
	var req assignAnalystReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.AssignAnalyst(c.Request().Context(), c.Param("credit_id"), req.AnalystID, mw.Actor(c)); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type markCommissionReq struct {
	Pagada bool `json:"pagada"`
}

func (h *CreditHandler) MarkCommission(c echo.Context) error {
	var req markCommissionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.uc.MarkCommissionPaid(c.Request().Context(), c.Param("credit_id"), req.Pagada, mw.Actor(c)); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type addCommentReq struct {
	Texto         string `json:"texto" validate:"required"`
	AttachmentURL string `json:"attachment_url,omitempty" validate:"omitempty,url"`
}

func (h *CreditHandler) AddComment(c echo.Context) error {
	var req addCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	cm, err := h.uc.AddComment(c.Request().Context(), c.Param("credit_id"), req.Texto, req.AttachmentURL, mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, cm)
}

// UploadDocument takes a multipart file, stores it in object storage and
// registers the document on the credit.
func (h *CreditHandler) UploadDocument(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing file field"})
	}
	tipo := c.FormValue("tipo")
	if tipo == "" {
		tipo = "GENERAL"
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable file"})
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable file"})
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, _, err := h.files.Upload(c.Request().Context(), fh.Filename, contentType, data)
	if err != nil {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "upload failed"})
	}

	doc, err := h.uc.AddDocument(c.Request().Context(), c.Param("credit_id"), tipo, fh.Filename, url, mw.Actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *CreditHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("credit_id"), mw.Actor(c)); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
