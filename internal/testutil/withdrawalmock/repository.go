package withdrawalmock

import (
	"context"
	"errors"

	domain "creditos-backoffice/internal/domain/withdrawal"
)

var errUnimplemented = errors.New("withdrawalmock: method not implemented")

// Repo is a function-backed mock that satisfies withdrawal.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, r *domain.Request) error
	SaveFn                    func(ctx context.Context, r *domain.Request) error
	GetByRequestIDFn          func(ctx context.Context, requestID string) (*domain.Request, error)
	GetByRequestIDForUpdateFn func(ctx context.Context, requestID string) (*domain.Request, error)
	ListByGestorFn            func(ctx context.Context, gestorID string) ([]domain.Request, error)
	ListByStateFn             func(ctx context.Context, s domain.State) ([]domain.Request, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Request) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.Request) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRequestID(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.GetByRequestIDForUpdateFn != nil {
		return m.GetByRequestIDForUpdateFn(ctx, requestID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByGestor(ctx context.Context, gestorID string) ([]domain.Request, error) {
	if m.ListByGestorFn != nil {
		return m.ListByGestorFn(ctx, gestorID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByState(ctx context.Context, s domain.State) ([]domain.Request, error) {
	if m.ListByStateFn != nil {
		return m.ListByStateFn(ctx, s)
	}
	return nil, errUnimplemented
}
