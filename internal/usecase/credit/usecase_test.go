package credit

import (
	"context"
	"errors"
	"strings"
	"testing"

	domain "creditos-backoffice/internal/domain/credit"
	"creditos-backoffice/internal/domain/uow"
	"creditos-backoffice/internal/domain/user"
	"creditos-backoffice/internal/testutil/creditmock"
	"creditos-backoffice/internal/testutil/statemock"
	"creditos-backoffice/internal/testutil/uowmock"
	"creditos-backoffice/internal/usecase/permission"
)

func gestor() *user.User {
	return &user.User{UserID: strings.Repeat("g", 32), Nombre: "Gus Gestor", Role: user.RoleGestor}
}

func analyst() *user.User {
	return &user.User{UserID: strings.Repeat("a", 32), Nombre: "Ana Lista", Role: user.RoleAnalista}
}

func newUsecaseWith(repo *creditmock.Repo) *Usecase {
	states := statemock.Seeded()
	tx := uowmock.Passthrough(uow.Repos{Credits: repo, States: states})
	return NewUsecase(repo, states, permission.NewEvaluator(), tx, nil)
}

func TestCreate_InitialState(t *testing.T) {
	var stored *domain.Credit
	var history []domain.HistoryEntry
	repo := &creditmock.Repo{
		NextSolicitudNumberFn: func(ctx context.Context) (uint64, error) { return 101, nil },
		CreateFn: func(ctx context.Context, c *domain.Credit) error {
			c.ID = 1
			stored = c
			return nil
		},
		AppendHistoryFn: func(ctx context.Context, h *domain.HistoryEntry) error {
			history = append(history, *h)
			return nil
		},
		ListTasksFn: func(ctx context.Context, rowID uint64) ([]domain.DevolucionTask, error) { return nil, nil },
	}
	uc := newUsecaseWith(repo)

	got, err := uc.Create(context.Background(), CreateInput{
		Linea:         "Libranza Pensionados",
		Monto:         5_000_000,
		Plazo:         24,
		EntidadAliada: "Bayport",
		Cliente:       domain.ClientProfile{NombreCompleto: "María Pérez"},
	}, gestor())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.StatusID != domain.StateRadicado {
		t.Fatalf("initial status=%s", got.StatusID)
	}
	if got.SubsanacionHabilitada {
		t.Fatal("subsanación must start disabled")
	}
	if got.SolicitudNumber != 101 {
		t.Fatalf("solicitud=%d", got.SolicitudNumber)
	}
	if got.CommissionPercentage != 0.045 {
		t.Fatalf("commission pct=%v", got.CommissionPercentage)
	}
	if got.EstimatedCommission != 5_000_000*0.045 {
		t.Fatalf("estimated commission=%v", got.EstimatedCommission)
	}
	if stored == nil || len(stored.CreditID) != 32 {
		t.Fatalf("stored=%+v", stored)
	}
	if len(history) != 1 || history[0].Action != "CREACION" {
		t.Fatalf("history=%+v", history)
	}
	if got.Cliente.Version != domain.ProfileVersion {
		t.Fatalf("profile version=%d", got.Cliente.Version)
	}
}

func TestCreate_PermissionDenied(t *testing.T) {
	uc := newUsecaseWith(&creditmock.Repo{})
	operativo := &user.User{UserID: strings.Repeat("o", 32), Role: user.RoleOperativo}
	_, err := uc.Create(context.Background(), CreateInput{Monto: 1, Plazo: 1, EntidadAliada: "Bayport", Linea: "Retanqueo"}, operativo)
	if !errors.Is(err, permission.ErrDenied) {
		t.Fatalf("want ErrDenied, got %v", err)
	}
}

func TestCreate_UnknownEntityRejected(t *testing.T) {
	uc := newUsecaseWith(&creditmock.Repo{})
	_, err := uc.Create(context.Background(), CreateInput{
		Linea: "Libranza Pensionados", Monto: 1_000_000, Plazo: 12, EntidadAliada: "NoExiste",
	}, gestor())
	if err == nil {
		t.Fatal("want error for unknown allied entity")
	}
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	var stored *domain.Credit
	repo := &creditmock.Repo{
		CreateFn: func(ctx context.Context, c *domain.Credit) error { c.ID = 1; stored = c; return nil },
		GetByCreditIDFn: func(ctx context.Context, creditID string) (*domain.Credit, error) {
			if stored != nil && stored.CreditID == creditID {
				return stored, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	uc := newUsecaseWith(repo)
	g := gestor()

	created, err := uc.Create(context.Background(), CreateInput{
		Linea: "Libranza Pensionados", Monto: 5_000_000, Plazo: 24, EntidadAliada: "Bayport",
	}, g)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	d, err := uc.Get(context.Background(), created.CreditID, g)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.Credit.StatusID != domain.StateRadicado {
		t.Fatalf("status=%s", d.Credit.StatusID)
	}
	if len(d.Tasks) != 0 {
		t.Fatalf("tasks=%d", len(d.Tasks))
	}
	if d.Credit.SubsanacionHabilitada {
		t.Fatal("flag must be false")
	}
}

func TestUpdateData_LockedFieldsDuringSubsanacion(t *testing.T) {
	g := gestor()
	c := &domain.Credit{
		ID:                    1,
		CreditID:              strings.Repeat("c", 32),
		AssignedGestorID:      g.UserID,
		StatusID:              domain.StateDevuelto,
		SubsanacionHabilitada: true,
		Monto:                 5_000_000,
		CommissionPercentage:  0.045,
		Cliente:               domain.ClientProfile{Version: 1, DireccionCompleta: "Calle 1 # 2-3"},
	}
	repo := &creditmock.Repo{
		GetByCreditIDForUpdateFn: func(ctx context.Context, id string) (*domain.Credit, error) { return c, nil },
		SaveFn:                   func(ctx context.Context, saved *domain.Credit) error { c = saved; return nil },
	}
	uc := newUsecaseWith(repo)

	monto := 9_000_000.0
	updated, err := uc.UpdateData(context.Background(), c.CreditID, UpdateDataInput{
		Monto:   &monto,
		Cliente: &domain.ClientProfile{Version: 1, DireccionCompleta: "Carrera 45 # 10-20"},
	}, g)
	if err != nil {
		t.Fatalf("UpdateData: %v", err)
	}
	if updated.Monto != 5_000_000 {
		t.Fatalf("monto changed by gestor during subsanación: %v", updated.Monto)
	}
	if updated.Cliente.DireccionCompleta != "Carrera 45 # 10-20" {
		t.Fatalf("dirección not updated: %q", updated.Cliente.DireccionCompleta)
	}
	if updated.SubsanacionHabilitada {
		t.Fatal("saving during subsanación must clear the flag")
	}
}

func TestUpdateData_AnalystEditsFinancialFields(t *testing.T) {
	c := &domain.Credit{
		ID:                   1,
		CreditID:             strings.Repeat("c", 32),
		AssignedGestorID:     strings.Repeat("g", 32),
		StatusID:             domain.StateEnEstudio,
		Monto:                5_000_000,
		CommissionPercentage: 0.045,
	}
	repo := &creditmock.Repo{
		GetByCreditIDForUpdateFn: func(ctx context.Context, id string) (*domain.Credit, error) { return c, nil },
		SaveFn:                   func(ctx context.Context, saved *domain.Credit) error { c = saved; return nil },
	}
	uc := newUsecaseWith(repo)

	monto := 9_000_000.0
	updated, err := uc.UpdateData(context.Background(), c.CreditID, UpdateDataInput{Monto: &monto}, analyst())
	if err != nil {
		t.Fatalf("UpdateData: %v", err)
	}
	if updated.Monto != 9_000_000 {
		t.Fatalf("monto=%v", updated.Monto)
	}
	if updated.EstimatedCommission != 9_000_000*0.045 {
		t.Fatalf("estimated commission not recomputed: %v", updated.EstimatedCommission)
	}
}

func TestUpdateData_GestorWithoutSubsanacionDenied(t *testing.T) {
	g := gestor()
	c := &domain.Credit{
		ID:               1,
		CreditID:         strings.Repeat("c", 32),
		AssignedGestorID: g.UserID,
		StatusID:         domain.StateDevuelto,
	}
	repo := &creditmock.Repo{
		GetByCreditIDForUpdateFn: func(ctx context.Context, id string) (*domain.Credit, error) { return c, nil },
	}
	uc := newUsecaseWith(repo)
	_, err := uc.UpdateData(context.Background(), c.CreditID, UpdateDataInput{}, g)
	if !errors.Is(err, permission.ErrDenied) {
		t.Fatalf("want ErrDenied, got %v", err)
	}
}

func TestMarkCommissionPaid(t *testing.T) {
	c := &domain.Credit{ID: 1, CreditID: strings.Repeat("c", 32), AssignedGestorID: strings.Repeat("g", 32)}
	var history []domain.HistoryEntry
	repo := &creditmock.Repo{
		GetByCreditIDForUpdateFn: func(ctx context.Context, id string) (*domain.Credit, error) { return c, nil },
		SaveFn:                   func(ctx context.Context, saved *domain.Credit) error { c = saved; return nil },
		AppendHistoryFn: func(ctx context.Context, h *domain.HistoryEntry) error {
			history = append(history, *h)
			return nil
		},
	}
	uc := newUsecaseWith(repo)

	operativo := &user.User{UserID: strings.Repeat("o", 32), Role: user.RoleOperativo}
	if err := uc.MarkCommissionPaid(context.Background(), c.CreditID, true, operativo); err != nil {
		t.Fatalf("MarkCommissionPaid: %v", err)
	}
	if !c.ComisionPagada || c.FechaPagoComision == nil {
		t.Fatalf("commission not stamped: %+v", c)
	}
	if len(history) != 1 || history[0].Action != "COMISION" {
		t.Fatalf("history=%+v", history)
	}

	// unauthorized actor
	err := uc.MarkCommissionPaid(context.Background(), c.CreditID, false, gestor())
	if !errors.Is(err, permission.ErrDenied) {
		t.Fatalf("want ErrDenied, got %v", err)
	}
	if !c.ComisionPagada {
		t.Fatal("denied call must not mutate")
	}
}

func TestDelete_WritesFinalHistoryFirst(t *testing.T) {
	c := &domain.Credit{ID: 1, CreditID: strings.Repeat("c", 32), SolicitudNumber: 7}
	var order []string
	repo := &creditmock.Repo{
		GetByCreditIDForUpdateFn: func(ctx context.Context, id string) (*domain.Credit, error) { return c, nil },
		AppendHistoryFn: func(ctx context.Context, h *domain.HistoryEntry) error {
			order = append(order, "history:"+h.Action)
			return nil
		},
		SoftDeleteFn: func(ctx context.Context, cc *domain.Credit, deletedBy string) error {
			order = append(order, "delete:"+deletedBy)
			return nil
		},
	}
	uc := newUsecaseWith(repo)

	admin := &user.User{UserID: strings.Repeat("d", 32), Role: user.RoleAdmin}
	if err := uc.Delete(context.Background(), c.CreditID, admin); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(order) != 2 || order[0] != "history:ELIMINACION" || order[1] != "delete:"+admin.UserID {
		t.Fatalf("order=%v", order)
	}

	// non-admin without DELETE_CREDIT
	if err := uc.Delete(context.Background(), c.CreditID, analyst()); !errors.Is(err, permission.ErrDenied) {
		t.Fatalf("want ErrDenied, got %v", err)
	}
}

func TestList_GestorScopedToOwnBook(t *testing.T) {
	var gotFilter domain.ListFilter
	repo := &creditmock.Repo{
		ListFn: func(ctx context.Context, f domain.ListFilter) ([]domain.Credit, error) {
			gotFilter = f
			return nil, nil
		},
	}
	uc := newUsecaseWith(repo)
	g := gestor()
	if _, err := uc.List(context.Background(), domain.ListFilter{}, g); err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotFilter.GestorID != g.UserID {
		t.Fatalf("filter not scoped: %+v", gotFilter)
	}
}
