package mysql

import (
	"context"
	"testing"

	domain "creditos-backoffice/internal/domain/credit"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrate_SeedsStates(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	repo := NewStateRepository(db)
	states, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(states) != 9 {
		t.Fatalf("want 9 states, got %d", len(states))
	}
	if states[0].ID != domain.StateRadicado {
		t.Errorf("first state by orden = %q, want RADICADO", states[0].ID)
	}
	if states[len(states)-1].ID != domain.StateDesembolsado {
		t.Errorf("last state by orden = %q, want DESEMBOLSADO", states[len(states)-1].ID)
	}

	byID := map[string]domain.CreditState{}
	for _, s := range states {
		byID[s.ID] = s
	}
	if !byID[domain.StateDevuelto].IsReturned || !byID[domain.StateDevuelto].IsFinal {
		t.Errorf("DEVUELTO flags wrong: %+v", byID[domain.StateDevuelto])
	}
	if !byID[domain.StateAplazado].IsReturned || byID[domain.StateAplazado].IsFinal {
		t.Errorf("APLAZADO flags wrong: %+v", byID[domain.StateAplazado])
	}
	if !byID[domain.StateDesembolsado].IsFinal {
		t.Errorf("DESEMBOLSADO should be final")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := Migrate(db); err != nil {
			t.Fatalf("Migrate run %d: %v", i+1, err)
		}
	}

	var n int64
	if err := db.Model(&domain.CreditState{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 9 {
		t.Fatalf("states duplicated: %d", n)
	}

	var actions int64
	if err := db.Model(&domain.StateAction{}).Count(&actions).Error; err != nil {
		t.Fatalf("count actions: %v", err)
	}
	if actions == 0 {
		t.Fatalf("no state actions seeded")
	}
	repo := NewStateRepository(db)
	got, err := repo.ListActions(context.Background(), domain.StateEnEstudio)
	if err != nil {
		t.Fatalf("ListActions: %v", err)
	}
	if len(got) != 1 || got[0].Label != "Aprobar" {
		t.Fatalf("EN_ESTUDIO actions: %+v", got)
	}
}
