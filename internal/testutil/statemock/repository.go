package statemock

import (
	"context"
	"errors"

	domain "creditos-backoffice/internal/domain/credit"
)

// Repo satisfies credit.StateRepository over an in-memory state set.
type Repo struct {
	States  []domain.CreditState
	Actions map[string][]domain.StateAction
}

// Seeded returns a repo holding the full production state set.
func Seeded() *Repo {
	return &Repo{States: []domain.CreditState{
		{ID: domain.StateRadicado, Nombre: "RADICADO", Color: "#8E8E93", Orden: 1, ResponsibleRole: "GESTOR"},
		{ID: domain.StateEnEstudio, Nombre: "EN ESTUDIO", Color: "#007AFF", Orden: 2, ResponsibleRole: "ANALISTA"},
		{ID: domain.StateDevuelto, Nombre: "DEVUELTO", Color: "#FF3B30", Orden: 3, ResponsibleRole: "GESTOR", IsFinal: true, IsReturned: true},
		{ID: domain.StateSubsanado, Nombre: "SUBSANADO", Color: "#FF9500", Orden: 4, ResponsibleRole: "ANALISTA"},
		{ID: domain.StateAplazado, Nombre: "APLAZADO", Color: "#FFCC00", Orden: 5, ResponsibleRole: "GESTOR", IsReturned: true},
		{ID: domain.StateAprobado, Nombre: "APROBADO", Color: "#34C759", Orden: 6, ResponsibleRole: "ANALISTA"},
		{ID: domain.StatePendienteFirma, Nombre: "PENDIENTE FIRMA", Color: "#5856D6", Orden: 7, ResponsibleRole: "OPERATIVO"},
		{ID: domain.StatePendienteFirmaElec, Nombre: "PENDIENTE FIRMA ELECTRONICA", Color: "#AF52DE", Orden: 8, ResponsibleRole: "OPERATIVO"},
		{ID: domain.StateDesembolsado, Nombre: "DESEMBOLSADO", Color: "#30B0C7", Orden: 9, ResponsibleRole: "OPERATIVO", IsFinal: true},
	}}
}

// Without returns a copy of the repo with one state removed, for testing
// fail-visibly paths against missing configuration.
func (m *Repo) Without(stateID string) *Repo {
	out := &Repo{Actions: m.Actions}
	for _, s := range m.States {
		if s.ID != stateID {
			out.States = append(out.States, s)
		}
	}
	return out
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.CreditState, error) {
	for i := range m.States {
		if m.States[i].ID == id {
			return &m.States[i], nil
		}
	}
	return nil, errors.New("state not found")
}

func (m *Repo) List(ctx context.Context) ([]domain.CreditState, error) {
	return m.States, nil
}

func (m *Repo) ListActions(ctx context.Context, stateID string) ([]domain.StateAction, error) {
	return m.Actions[stateID], nil
}
