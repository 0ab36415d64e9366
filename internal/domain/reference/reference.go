// Package reference holds the fixed directory data: cities, banks, credit
// lines, pension types, allied entities and zones. Pure lookup, no logic.
package reference

type AlliedEntity struct {
	Nombre         string  `json:"nombre"`
	CommissionRate float64 `json:"commission_rate"`
	TasaMensual    float64 `json:"tasa_mensual"`
}

type CreditLine struct {
	Nombre    string  `json:"nombre"`
	MontoMin  float64 `json:"monto_min"`
	MontoMax  float64 `json:"monto_max"`
	PlazoMax  int     `json:"plazo_max"`
}

var Cities = []string{
	"Bogotá", "Medellín", "Cali", "Barranquilla", "Cartagena",
	"Bucaramanga", "Pereira", "Manizales", "Cúcuta", "Ibagué",
}

var Banks = []string{
	"Bancolombia", "Banco de Bogotá", "Davivienda", "BBVA",
	"Banco Popular", "Banco Agrario", "Colpatria", "Banco Caja Social",
}

var PensionTypes = []string{
	"Vejez", "Invalidez", "Sobrevivencia", "Sustitución",
}

var Zones = []string{
	"Norte", "Sur", "Centro", "Occidente", "Oriente",
}

var CreditLines = []CreditLine{
	{Nombre: "Libranza Pensionados", MontoMin: 1_000_000, MontoMax: 120_000_000, PlazoMax: 144},
	{Nombre: "Compra de Cartera", MontoMin: 5_000_000, MontoMax: 150_000_000, PlazoMax: 144},
	{Nombre: "Retanqueo", MontoMin: 2_000_000, MontoMax: 100_000_000, PlazoMax: 120},
}

var AlliedEntities = []AlliedEntity{
	{Nombre: "Bayport", CommissionRate: 0.045, TasaMensual: 0.0158},
	{Nombre: "Excelcredit", CommissionRate: 0.050, TasaMensual: 0.0165},
	{Nombre: "Credivalores", CommissionRate: 0.040, TasaMensual: 0.0172},
	{Nombre: "Avista", CommissionRate: 0.055, TasaMensual: 0.0169},
}

// EntityByName returns the allied entity, or nil when unknown.
func EntityByName(nombre string) *AlliedEntity {
	for i := range AlliedEntities {
		if AlliedEntities[i].Nombre == nombre {
			return &AlliedEntities[i]
		}
	}
	return nil
}

// LineByName returns the credit line, or nil when unknown.
func LineByName(nombre string) *CreditLine {
	for i := range CreditLines {
		if CreditLines[i].Nombre == nombre {
			return &CreditLines[i]
		}
	}
	return nil
}
