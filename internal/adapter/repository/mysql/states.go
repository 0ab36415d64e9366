package mysql

import (
	"context"

	creditDomain "creditos-backoffice/internal/domain/credit"

	"gorm.io/gorm"
)

type StateRepository struct{ db *gorm.DB }

func NewStateRepository(db *gorm.DB) *StateRepository { return &StateRepository{db: db} }

func (r *StateRepository) GetByID(ctx context.Context, id string) (*creditDomain.CreditState, error) {
	var out creditDomain.CreditState
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *StateRepository) List(ctx context.Context) ([]creditDomain.CreditState, error) {
	var out []creditDomain.CreditState
	res := r.db.WithContext(ctx).Order("orden ASC").Find(&out)
	return out, res.Error
}

func (r *StateRepository) ListActions(ctx context.Context, stateID string) ([]creditDomain.StateAction, error) {
	var out []creditDomain.StateAction
	res := r.db.WithContext(ctx).Where("state_id = ?", stateID).Find(&out)
	return out, res.Error
}
