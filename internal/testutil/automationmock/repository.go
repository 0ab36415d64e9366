package automationmock

import (
	"context"
	"errors"

	domain "creditos-backoffice/internal/domain/automation"
)

var errUnimplemented = errors.New("automationmock: method not implemented")

// Repo is a function-backed mock that satisfies automation.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, r *domain.Rule) error
	SaveFn              func(ctx context.Context, r *domain.Rule) error
	DeleteFn            func(ctx context.Context, ruleID string) error
	GetByRuleIDFn       func(ctx context.Context, ruleID string) (*domain.Rule, error)
	ListFn              func(ctx context.Context) ([]domain.Rule, error)
	ListActiveByEventFn func(ctx context.Context, ev domain.EventType) ([]domain.Rule, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Rule) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.Rule) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, ruleID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ruleID)
	}
	return nil
}

func (m *Repo) GetByRuleID(ctx context.Context, ruleID string) (*domain.Rule, error) {
	if m.GetByRuleIDFn != nil {
		return m.GetByRuleIDFn(ctx, ruleID)
	}
	return nil, errUnimplemented
}

func (m *Repo) List(ctx context.Context) ([]domain.Rule, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListActiveByEvent(ctx context.Context, ev domain.EventType) ([]domain.Rule, error) {
	if m.ListActiveByEventFn != nil {
		return m.ListActiveByEventFn(ctx, ev)
	}
	return nil, nil
}
