package withdrawal

import (
	"context"
	"errors"
	"time"

	"creditos-backoffice/internal/domain/automation"
	"creditos-backoffice/internal/domain/uow"
	"creditos-backoffice/internal/domain/user"
	"creditos-backoffice/internal/domain/withdrawal"
	"creditos-backoffice/internal/usecase/permission"
	"creditos-backoffice/pkg/id"
)

type Notifier interface {
	Emit(ctx context.Context, ev automation.Event)
}

type Usecase struct {
	repo     withdrawal.Repository
	perms    *permission.Evaluator
	uow      uow.UnitOfWork
	notifier Notifier
}

func NewUsecase(repo withdrawal.Repository, perms *permission.Evaluator, tx uow.UnitOfWork, n Notifier) *Usecase {
	return &Usecase{repo: repo, perms: perms, uow: tx, notifier: n}
}

// Request opens a PENDIENTE cash-out over the gestor's credits. Only credits
// owned by the actor with an unpaid commission enter the batch.
func (u *Usecase) Request(ctx context.Context, creditIDs []string, actor *user.User) (*withdrawal.Request, error) {
	if err := u.perms.Require(actor, user.PermRequestWithdrawal); err != nil {
		return nil, err
	}
	if len(creditIDs) == 0 {
		return nil, errors.New("empty credit batch")
	}
	var req *withdrawal.Request
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var total float64
		accepted := make([]string, 0, len(creditIDs))
		for _, cid := range creditIDs {
			c, err := r.Credits.GetByCreditID(ctx, cid)
			if err != nil {
				return err
			}
			if c.AssignedGestorID != actor.UserID {
				return permission.ErrDenied
			}
			if c.ComisionPagada {
				continue
			}
			total += c.EstimatedCommission
			accepted = append(accepted, c.CreditID)
		}
		if len(accepted) == 0 {
			return errors.New("no credits with pending commission in batch")
		}
		req = &withdrawal.Request{
			RequestID:   id.NewID32(),
			GestorID:    actor.UserID,
			CreditIDs:   accepted,
			TotalAmount: total,
			State:       withdrawal.StatePendiente,
		}
		return r.Withdrawals.Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	if u.notifier != nil {
		u.notifier.Emit(ctx, automation.Event{
			Type:      automation.EventWithdrawalRequested,
			ActorRole: string(actor.Role),
			Payload:   map[string]any{"request_id": req.RequestID, "total": req.TotalAmount},
			At:        time.Now().UTC(),
		})
	}
	return req, nil
}

// Resolve finishes a pending request: PROCESADO or RECHAZADO, terminal.
func (u *Usecase) Resolve(ctx context.Context, requestID string, approve bool, nota string, actor *user.User) (*withdrawal.Request, error) {
	if err := u.perms.Require(actor, user.PermProcessWithdrawals); err != nil {
		return nil, err
	}
	var out *withdrawal.Request
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Withdrawals.GetByRequestIDForUpdate(ctx, requestID)
		if err != nil {
			return withdrawal.ErrNotFound
		}
		if req.State != withdrawal.StatePendiente {
			return withdrawal.ErrAlreadyResolved
		}
		if approve {
			req.State = withdrawal.StateProcesado
		} else {
			req.State = withdrawal.StateRechazado
		}
		now := time.Now().UTC()
		req.ResolvedBy = actor.UserID
		req.ResolvedAt = &now
		req.Nota = nota
		if err := r.Withdrawals.Save(ctx, req); err != nil {
			return err
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) ListMine(ctx context.Context, actor *user.User) ([]withdrawal.Request, error) {
	if actor == nil {
		return nil, permission.ErrDenied
	}
	return u.repo.ListByGestor(ctx, actor.UserID)
}

func (u *Usecase) ListPending(ctx context.Context, actor *user.User) ([]withdrawal.Request, error) {
	if err := u.perms.Require(actor, user.PermProcessWithdrawals); err != nil {
		return nil, err
	}
	return u.repo.ListByState(ctx, withdrawal.StatePendiente)
}
