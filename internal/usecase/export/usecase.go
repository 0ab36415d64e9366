package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"creditos-backoffice/internal/domain/credit"
	"creditos-backoffice/internal/domain/user"
	"creditos-backoffice/internal/usecase/permission"

	"github.com/xuri/excelize/v2"
)

var columns = []string{
	"solicitud", "credit_id", "gestor_id", "estado", "linea", "monto", "plazo",
	"tasa", "entidad_aliada", "comision_estimada", "comision_pagada",
	"fecha_pago_comision", "cliente", "documento", "ciudad", "creado",
}

type Usecase struct {
	credits credit.Repository
	perms   *permission.Evaluator
}

func NewUsecase(credits credit.Repository, perms *permission.Evaluator) *Usecase {
	return &Usecase{credits: credits, perms: perms}
}

func row(c *credit.Credit) []string {
	fecha := ""
	if c.FechaPagoComision != nil {
		fecha = c.FechaPagoComision.Format(time.RFC3339)
	}
	return []string{
		strconv.FormatUint(c.SolicitudNumber, 10),
		c.CreditID,
		c.AssignedGestorID,
		c.StatusID,
		c.Linea,
		strconv.FormatFloat(c.Monto, 'f', 2, 64),
		strconv.Itoa(c.Plazo),
		strconv.FormatFloat(c.Tasa, 'f', 4, 64),
		c.EntidadAliada,
		strconv.FormatFloat(c.EstimatedCommission, 'f', 2, 64),
		strconv.FormatBool(c.ComisionPagada),
		fecha,
		c.Cliente.NombreCompleto,
		c.Cliente.NumeroDocumento,
		c.Cliente.Ciudad,
		c.CreatedAt.Format(time.RFC3339),
	}
}

// CSV writes the flat denormalized projection of the filtered credits.
func (u *Usecase) CSV(ctx context.Context, f credit.ListFilter, actor *user.User) ([]byte, error) {
	if err := u.perms.Require(actor, user.PermExportData); err != nil {
		return nil, err
	}
	credits, err := u.credits.List(ctx, f)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, err
	}
	for i := range credits {
		if err := w.Write(row(&credits[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// XLSX renders the same projection as a spreadsheet.
func (u *Usecase) XLSX(ctx context.Context, f credit.ListFilter, actor *user.User) ([]byte, error) {
	if err := u.perms.Require(actor, user.PermExportData); err != nil {
		return nil, err
	}
	credits, err := u.credits.List(ctx, f)
	if err != nil {
		return nil, err
	}

	x := excelize.NewFile()
	defer x.Close()
	const sheet = "Creditos"
	idx, err := x.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	x.SetActiveSheet(idx)
	_ = x.DeleteSheet("Sheet1")

	for col, name := range columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := x.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}
	}
	for i := range credits {
		for col, v := range row(&credits[i]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := x.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := x.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
