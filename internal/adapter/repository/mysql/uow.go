package mysql

import (
	"context"

	creditDomain "creditos-backoffice/internal/domain/credit"
	"creditos-backoffice/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Credits:     &CreditRepository{db: tx},
		States:      &StateRepository{db: tx},
		Users:       &UserRepository{db: tx},
		Withdrawals: &WithdrawalRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(u.repos(tx))
	})
}

func (u *GormUoW) WithinCreditTx(ctx context.Context, creditID string, fn func(r uow.Repos, c *creditDomain.Credit) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := u.repos(tx)
		// lock the credit row up-front to prevent races
		c, err := r.Credits.GetByCreditIDForUpdate(ctx, creditID)
		if err != nil {
			return err
		}
		return fn(r, c)
	})
}
