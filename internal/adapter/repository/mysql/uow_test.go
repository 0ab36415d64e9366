package mysql

import (
	"context"
	"errors"
	"testing"

	creditDomain "creditos-backoffice/internal/domain/credit"
	"creditos-backoffice/internal/domain/uow"
	"creditos-backoffice/pkg/id"

	"gorm.io/gorm"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	creditRepo := NewCreditRepository(db)

	creditID := id.NewID32()
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		n, err := r.Credits.NextSolicitudNumber(ctx)
		if err != nil {
			return err
		}
		c := makeCredit(creditID, id.NewID32(), n)
		if err := r.Credits.Create(ctx, c); err != nil {
			return err
		}
		return r.Credits.AppendHistory(ctx, &creditDomain.HistoryEntry{
			EntryID:     id.NewID32(),
			CreditRowID: c.ID,
			ActorID:     c.AssignedGestorID,
			Action:      "CREACION",
		})
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	got, err := creditRepo.GetByCreditID(ctx, creditID)
	if err != nil {
		t.Fatalf("credit not visible after commit: %v", err)
	}
	hist, err := creditRepo.ListHistory(ctx, got.ID)
	if err != nil || len(hist) != 1 {
		t.Fatalf("history not visible after commit: %v (%d)", err, len(hist))
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	creditRepo := NewCreditRepository(db)

	boom := errors.New("boom")
	creditID := id.NewID32()
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Credits.Create(ctx, makeCredit(creditID, id.NewID32(), 1)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}

	if _, err := creditRepo.GetByCreditID(ctx, creditID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("credit visible after rollback, err=%v", err)
	}
}

func TestGormUoW_WithinCreditTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	creditRepo := NewCreditRepository(db)

	creditID := id.NewID32()
	if err := creditRepo.Create(ctx, makeCredit(creditID, id.NewID32(), 1)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := guow.WithinCreditTx(ctx, creditID, func(r uow.Repos, c *creditDomain.Credit) error {
		c.StatusID = creditDomain.StateEnEstudio
		return r.Credits.Save(ctx, c)
	})
	if err != nil {
		t.Fatalf("WithinCreditTx commit err: %v", err)
	}

	got, err := creditRepo.GetByCreditID(ctx, creditID)
	if err != nil {
		t.Fatalf("GetByCreditID: %v", err)
	}
	if got.StatusID != creditDomain.StateEnEstudio {
		t.Errorf("status not updated: %q", got.StatusID)
	}
}

func TestGormUoW_WithinCreditTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	creditRepo := NewCreditRepository(db)

	creditID := id.NewID32()
	if err := creditRepo.Create(ctx, makeCredit(creditID, id.NewID32(), 1)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	boom := errors.New("boom")
	_ = guow.WithinCreditTx(ctx, creditID, func(r uow.Repos, c *creditDomain.Credit) error {
		c.StatusID = creditDomain.StateDesembolsado
		if err := r.Credits.Save(ctx, c); err != nil {
			return err
		}
		return boom
	})

	got, err := creditRepo.GetByCreditID(ctx, creditID)
	if err != nil {
		t.Fatalf("GetByCreditID: %v", err)
	}
	if got.StatusID != creditDomain.StateRadicado {
		t.Errorf("status leaked after rollback: %q", got.StatusID)
	}
}

func TestGormUoW_WithinCreditTx_NotFound(t *testing.T) {
	db := openTestDB(t)

	guow := NewGormUoW(db)
	called := false
	err := guow.WithinCreditTx(context.Background(), "ffffffffffffffffffffffffffffffff", func(r uow.Repos, c *creditDomain.Credit) error {
		called = true
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
	if called {
		t.Fatalf("fn called for missing credit")
	}
}
