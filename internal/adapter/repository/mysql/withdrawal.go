package mysql

import (
	"context"

	withdrawalDomain "creditos-backoffice/internal/domain/withdrawal"

	"gorm.io/gorm"
)

type WithdrawalRepository struct{ db *gorm.DB }

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

func (r *WithdrawalRepository) Create(ctx context.Context, req *withdrawalDomain.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *WithdrawalRepository) Save(ctx context.Context, req *withdrawalDomain.Request) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *WithdrawalRepository) GetByRequestID(ctx context.Context, requestID string) (*withdrawalDomain.Request, error) {
	var out withdrawalDomain.Request
	res := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&out)
	return &out, res.Error
}

func (r *WithdrawalRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*withdrawalDomain.Request, error) {
	var out withdrawalDomain.Request
	res := forUpdate(r.db.WithContext(ctx)).
		Where("request_id = ?", requestID).
		First(&out)
	return &out, res.Error
}

func (r *WithdrawalRepository) ListByGestor(ctx context.Context, gestorID string) ([]withdrawalDomain.Request, error) {
	var out []withdrawalDomain.Request
	res := r.db.WithContext(ctx).
		Where("gestor_id = ?", gestorID).
		Order("created_at DESC").
		Find(&out)
	return out, res.Error
}

func (r *WithdrawalRepository) ListByState(ctx context.Context, s withdrawalDomain.State) ([]withdrawalDomain.Request, error) {
	var out []withdrawalDomain.Request
	res := r.db.WithContext(ctx).
		Where("state = ?", s).
		Order("created_at ASC").
		Find(&out)
	return out, res.Error
}
