package automation

import "context"

type Repository interface {
	Create(ctx context.Context, r *Rule) error
	Save(ctx context.Context, r *Rule) error
	Delete(ctx context.Context, ruleID string) error
	GetByRuleID(ctx context.Context, ruleID string) (*Rule, error)
	List(ctx context.Context) ([]Rule, error)
	ListActiveByEvent(ctx context.Context, ev EventType) ([]Rule, error)
}
