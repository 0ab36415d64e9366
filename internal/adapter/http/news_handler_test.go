package http

import (
	"context"
	stdhttp "net/http"
	"testing"

	newsDomain "creditos-backoffice/internal/domain/news"
	newsUC "creditos-backoffice/internal/usecase/news"
)

// in-memory news.Repository
type newsStore struct{ items []newsDomain.Item }

func (s *newsStore) Create(ctx context.Context, n *newsDomain.Item) error {
	s.items = append(s.items, *n)
	return nil
}

func (s *newsStore) Save(ctx context.Context, n *newsDomain.Item) error {
	for i := range s.items {
		if s.items[i].ItemID == n.ItemID {
			s.items[i] = *n
		}
	}
	return nil
}

func (s *newsStore) Delete(ctx context.Context, itemID string) error {
	out := s.items[:0]
	for _, it := range s.items {
		if it.ItemID != itemID {
			out = append(out, it)
		}
	}
	s.items = out
	return nil
}

func (s *newsStore) GetByItemID(ctx context.Context, itemID string) (*newsDomain.Item, error) {
	for i := range s.items {
		if s.items[i].ItemID == itemID {
			return &s.items[i], nil
		}
	}
	return nil, newsDomain.ErrNotFound
}

func (s *newsStore) List(ctx context.Context) ([]newsDomain.Item, error) { return s.items, nil }

func TestNewsCreate_AdminOnly(t *testing.T) {
	e := newEchoWithValidator()
	store := &newsStore{}
	h := NewNewsHandler(newsUC.NewUsecase(store, newPerms()))

	body := mustJSON(map[string]any{"titulo": "Nueva tasa Bayport", "cuerpo": "Desde el lunes la tasa baja al 1.55%."})
	c, rec := newCtx(e, stdhttp.MethodPost, "/api/noticias", body, admin())
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(store.items) != 1 || store.items[0].Titulo != "Nueva tasa Bayport" {
		t.Fatalf("stored = %+v", store.items)
	}

	// gestores read the board but do not write to it
	body = mustJSON(map[string]any{"titulo": "x", "cuerpo": "y"})
	c, rec = newCtx(e, stdhttp.MethodPost, "/api/noticias", body, gestor(gestorID))
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestNewsUpdate_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	h := NewNewsHandler(newsUC.NewUsecase(&newsStore{}, newPerms()))

	body := mustJSON(map[string]any{"titulo": "t", "cuerpo": "c"})
	c, rec := newCtx(e, stdhttp.MethodPut, "/api/noticias/x", body, admin())
	c.SetParamNames("item_id")
	c.SetParamValues("ffffffffffffffffffffffffffffffff")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestNewsList_AnyAuthenticatedUser(t *testing.T) {
	e := newEchoWithValidator()
	store := &newsStore{items: []newsDomain.Item{{ItemID: "a", Titulo: "t"}}}
	h := NewNewsHandler(newsUC.NewUsecase(store, newPerms()))

	c, rec := newCtx(e, stdhttp.MethodGet, "/api/noticias", nil, gestor(gestorID))
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
