package mysql

import (
	"context"

	automationDomain "creditos-backoffice/internal/domain/automation"

	"gorm.io/gorm"
)

type AutomationRepository struct{ db *gorm.DB }

func NewAutomationRepository(db *gorm.DB) *AutomationRepository {
	return &AutomationRepository{db: db}
}

func (r *AutomationRepository) Create(ctx context.Context, rule *automationDomain.Rule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *AutomationRepository) Save(ctx context.Context, rule *automationDomain.Rule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *AutomationRepository) Delete(ctx context.Context, ruleID string) error {
	return r.db.WithContext(ctx).Where("rule_id = ?", ruleID).Delete(&automationDomain.Rule{}).Error
}

func (r *AutomationRepository) GetByRuleID(ctx context.Context, ruleID string) (*automationDomain.Rule, error) {
	var out automationDomain.Rule
	res := r.db.WithContext(ctx).Where("rule_id = ?", ruleID).First(&out)
	return &out, res.Error
}

func (r *AutomationRepository) List(ctx context.Context) ([]automationDomain.Rule, error) {
	var out []automationDomain.Rule
	res := r.db.WithContext(ctx).Order("created_at ASC").Find(&out)
	return out, res.Error
}

func (r *AutomationRepository) ListActiveByEvent(ctx context.Context, ev automationDomain.EventType) ([]automationDomain.Rule, error) {
	var out []automationDomain.Rule
	res := r.db.WithContext(ctx).
		Where("event = ? AND active = ?", ev, true).
		Find(&out)
	return out, res.Error
}
