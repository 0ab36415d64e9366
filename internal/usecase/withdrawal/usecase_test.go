package withdrawal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	creditdomain "creditos-backoffice/internal/domain/credit"
	"creditos-backoffice/internal/domain/uow"
	"creditos-backoffice/internal/domain/user"
	domain "creditos-backoffice/internal/domain/withdrawal"
	"creditos-backoffice/internal/testutil/creditmock"
	"creditos-backoffice/internal/testutil/uowmock"
	"creditos-backoffice/internal/testutil/withdrawalmock"
	"creditos-backoffice/internal/usecase/permission"
)

func gestor() *user.User {
	return &user.User{UserID: strings.Repeat("g", 32), Role: user.RoleGestor}
}

func TestRequest_SumsPendingCommissions(t *testing.T) {
	g := gestor()
	credits := map[string]*creditdomain.Credit{
		"c1": {CreditID: "c1", AssignedGestorID: g.UserID, EstimatedCommission: 200_000},
		"c2": {CreditID: "c2", AssignedGestorID: g.UserID, EstimatedCommission: 350_000, ComisionPagada: true},
		"c3": {CreditID: "c3", AssignedGestorID: g.UserID, EstimatedCommission: 150_000},
	}
	creditRepo := &creditmock.Repo{
		GetByCreditIDFn: func(ctx context.Context, id string) (*creditdomain.Credit, error) {
			if c, ok := credits[id]; ok {
				return c, nil
			}
			return nil, creditdomain.ErrNotFound
		},
	}
	var created *domain.Request
	wRepo := &withdrawalmock.Repo{
		CreateFn: func(ctx context.Context, r *domain.Request) error { created = r; return nil },
	}
	tx := uowmock.Passthrough(uow.Repos{Credits: creditRepo, Withdrawals: wRepo})
	uc := NewUsecase(wRepo, permission.NewEvaluator(), tx, nil)

	req, err := uc.Request(context.Background(), []string{"c1", "c2", "c3"}, g)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if req.TotalAmount != 350_000 {
		t.Fatalf("total=%v, want sum of unpaid commissions", req.TotalAmount)
	}
	// the already-paid credit is dropped from the batch
	if len(req.CreditIDs) != 2 {
		t.Fatalf("credit ids=%v", req.CreditIDs)
	}
	if created == nil || created.State != domain.StatePendiente {
		t.Fatalf("created=%+v", created)
	}
}

func TestRequest_ForeignCreditDenied(t *testing.T) {
	g := gestor()
	creditRepo := &creditmock.Repo{
		GetByCreditIDFn: func(ctx context.Context, id string) (*creditdomain.Credit, error) {
			return &creditdomain.Credit{CreditID: id, AssignedGestorID: strings.Repeat("x", 32)}, nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Credits: creditRepo, Withdrawals: &withdrawalmock.Repo{}})
	uc := NewUsecase(&withdrawalmock.Repo{}, permission.NewEvaluator(), tx, nil)

	_, err := uc.Request(context.Background(), []string{"c1"}, g)
	if !errors.Is(err, permission.ErrDenied) {
		t.Fatalf("want ErrDenied, got %v", err)
	}
}

func TestResolve_TerminalStates(t *testing.T) {
	req := &domain.Request{RequestID: "r1", State: domain.StatePendiente}
	wRepo := &withdrawalmock.Repo{
		GetByRequestIDForUpdateFn: func(ctx context.Context, id string) (*domain.Request, error) { return req, nil },
		SaveFn:                    func(ctx context.Context, r *domain.Request) error { req = r; return nil },
	}
	tx := uowmock.Passthrough(uow.Repos{Withdrawals: wRepo})
	uc := NewUsecase(wRepo, permission.NewEvaluator(), tx, nil)

	operativo := &user.User{UserID: strings.Repeat("o", 32), Role: user.RoleOperativo}
	out, err := uc.Resolve(context.Background(), "r1", true, "ok", operativo)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if out.State != domain.StateProcesado || out.ResolvedAt == nil || out.ResolvedBy != operativo.UserID {
		t.Fatalf("out=%+v", out)
	}
	if time.Since(*out.ResolvedAt) > time.Minute {
		t.Fatal("resolved_at not stamped to now")
	}

	// second resolution must fail
	_, err = uc.Resolve(context.Background(), "r1", false, "no", operativo)
	if !errors.Is(err, domain.ErrAlreadyResolved) {
		t.Fatalf("want ErrAlreadyResolved, got %v", err)
	}
}

func TestResolve_PermissionDenied(t *testing.T) {
	uc := NewUsecase(&withdrawalmock.Repo{}, permission.NewEvaluator(), uowmock.Passthrough(uow.Repos{}), nil)
	_, err := uc.Resolve(context.Background(), "r1", true, "", gestor())
	if !errors.Is(err, permission.ErrDenied) {
		t.Fatalf("want ErrDenied, got %v", err)
	}
}
