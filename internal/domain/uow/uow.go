package uow

import (
	"context"

	"creditos-backoffice/internal/domain/credit"
	"creditos-backoffice/internal/domain/user"
	"creditos-backoffice/internal/domain/withdrawal"
)

type Repos struct {
	Credits     credit.Repository
	States      credit.StateRepository
	Users       user.Repository
	Withdrawals withdrawal.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the credit row first, then pass it in
	WithinCreditTx(ctx context.Context, creditID string, fn func(r Repos, c *credit.Credit) error) error
}
