package credit

import "creditos-backoffice/internal/domain/credit"

type CreateInput struct {
	Linea         string               `json:"linea"`
	Monto         float64              `json:"monto"`
	Plazo         int                  `json:"plazo"`
	EntidadAliada string               `json:"entidad_aliada"`
	Cliente       credit.ClientProfile `json:"cliente"`
}

// UpdateDataInput carries partial edits. Financial fields (linea, monto,
// plazo, tasa, cuota, entidad) are locked for gestores during subsanación.
type UpdateDataInput struct {
	Linea         *string  `json:"linea,omitempty"`
	Monto         *float64 `json:"monto,omitempty"`
	Plazo         *int     `json:"plazo,omitempty"`
	Tasa          *float64 `json:"tasa,omitempty"`
	Cuota         *float64 `json:"cuota,omitempty"`
	EntidadAliada *string  `json:"entidad_aliada,omitempty"`

	Cliente *credit.ClientProfile `json:"cliente,omitempty"`
}
