package uowmock

import (
	"context"
	"errors"

	"creditos-backoffice/internal/domain/credit"
	"creditos-backoffice/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return
// errUnimplemented. Passthrough builds the common case where the "tx" just
// runs the callback against fixed repos.
type UoW struct {
	WithinTxFn       func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinCreditTxFn func(ctx context.Context, creditID string, fn func(r uow.Repos, c *credit.Credit) error) error
}

// Passthrough returns a UoW whose transactions simply invoke the callback
// with the given repos; WithinCreditTx resolves the credit via the repos.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(r)
		},
		WithinCreditTxFn: func(ctx context.Context, creditID string, fn func(uow.Repos, *credit.Credit) error) error {
			c, err := r.Credits.GetByCreditIDForUpdate(ctx, creditID)
			if err != nil {
				return err
			}
			return fn(r, c)
		},
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinCreditTx(ctx context.Context, creditID string, fn func(r uow.Repos, c *credit.Credit) error) error {
	if m.WithinCreditTxFn != nil {
		return m.WithinCreditTxFn(ctx, creditID, fn)
	}
	return errUnimplemented
}
