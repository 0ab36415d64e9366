package automation

import (
	"context"

	"creditos-backoffice/internal/domain/automation"
	"creditos-backoffice/internal/domain/user"
	"creditos-backoffice/internal/usecase/permission"
	"creditos-backoffice/pkg/id"
)

// Usecase covers rule administration. Delivery lives in Dispatcher.
type Usecase struct {
	repo       automation.Repository
	perms      *permission.Evaluator
	dispatcher *Dispatcher
}

func NewUsecase(repo automation.Repository, perms *permission.Evaluator, d *Dispatcher) *Usecase {
	return &Usecase{repo: repo, perms: perms, dispatcher: d}
}

type RuleInput struct {
	Nombre      string               `json:"nombre"`
	Event       automation.EventType `json:"event"`
	TargetURL   string               `json:"target_url"`
	RoleFilter  string               `json:"role_filter,omitempty"`
	StateFilter string               `json:"state_filter,omitempty"`
	Active      bool                 `json:"active"`
}

func (u *Usecase) CreateRule(ctx context.Context, in RuleInput, actor *user.User) (*automation.Rule, error) {
	if err := u.perms.Require(actor, user.PermManageAutomations); err != nil {
		return nil, err
	}
	r := &automation.Rule{
		RuleID:      id.NewID32(),
		Nombre:      in.Nombre,
		Event:       in.Event,
		TargetURL:   in.TargetURL,
		RoleFilter:  in.RoleFilter,
		StateFilter: in.StateFilter,
		Active:      in.Active,
	}
	if err := u.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (u *Usecase) UpdateRule(ctx context.Context, ruleID string, in RuleInput, actor *user.User) (*automation.Rule, error) {
	if err := u.perms.Require(actor, user.PermManageAutomations); err != nil {
		return nil, err
	}
	r, err := u.repo.GetByRuleID(ctx, ruleID)
	if err != nil {
		return nil, automation.ErrNotFound
	}
	r.Nombre = in.Nombre
	r.Event = in.Event
	r.TargetURL = in.TargetURL
	r.RoleFilter = in.RoleFilter
	r.StateFilter = in.StateFilter
	r.Active = in.Active
	if err := u.repo.Save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (u *Usecase) DeleteRule(ctx context.Context, ruleID string, actor *user.User) error {
	if err := u.perms.Require(actor, user.PermManageAutomations); err != nil {
		return err
	}
	return u.repo.Delete(ctx, ruleID)
}

func (u *Usecase) ListRules(ctx context.Context, actor *user.User) ([]automation.Rule, error) {
	if err := u.perms.Require(actor, user.PermManageAutomations); err != nil {
		return nil, err
	}
	return u.repo.List(ctx)
}

// TestRule fires the rule's endpoint once and reports the immediate HTTP
// outcome; nothing is persisted or retried.
func (u *Usecase) TestRule(ctx context.Context, ruleID string, actor *user.User) error {
	if err := u.perms.Require(actor, user.PermManageAutomations); err != nil {
		return err
	}
	r, err := u.repo.GetByRuleID(ctx, ruleID)
	if err != nil {
		return automation.ErrNotFound
	}
	return u.dispatcher.deliver(ctx, r.TargetURL, automation.Event{
		Type:    r.Event,
		Payload: map[string]any{"test": true, "rule_id": r.RuleID},
	})
}
