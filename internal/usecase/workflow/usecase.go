package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"creditos-backoffice/internal/domain/automation"
	"creditos-backoffice/internal/domain/credit"
	"creditos-backoffice/internal/domain/uow"
	"creditos-backoffice/internal/domain/user"
	"creditos-backoffice/internal/usecase/permission"
	"creditos-backoffice/pkg/id"
)

const actionStatusChange = "CAMBIO ESTADO"

// Notifier mirrors usecase/credit.Notifier; emission is best-effort.
type Notifier interface {
	Emit(ctx context.Context, ev automation.Event)
}

type Usecase struct {
	perms    *permission.Evaluator
	uow      uow.UnitOfWork
	notifier Notifier
	// strict turns on adjacency checking; the default is free-form
	// assignment gated by permission only.
	strict bool
}

func NewUsecase(perms *permission.Evaluator, tx uow.UnitOfWork, n Notifier, strict bool) *Usecase {
	return &Usecase{perms: perms, uow: tx, notifier: n, strict: strict}
}

// adjacency holds the nominal order used only in strict mode.
var adjacency = map[string][]string{
	credit.StateRadicado:           {credit.StateEnEstudio, credit.StateDevuelto, credit.StateAplazado},
	credit.StateEnEstudio:          {credit.StateAprobado, credit.StateDevuelto, credit.StateAplazado},
	credit.StateDevuelto:           {credit.StateSubsanado},
	credit.StateAplazado:           {credit.StateSubsanado},
	credit.StateSubsanado:          {credit.StateEnEstudio, credit.StateAprobado, credit.StateDevuelto},
	credit.StateAprobado:           {credit.StatePendienteFirma, credit.StatePendienteFirmaElec, credit.StateDevuelto},
	credit.StatePendienteFirma:     {credit.StatePendienteFirmaElec, credit.StateDesembolsado, credit.StateDevuelto},
	credit.StatePendienteFirmaElec: {credit.StateDesembolsado, credit.StateDevuelto},
	credit.StateDesembolsado:       {},
}

func (u *Usecase) allowed(from, to string) bool {
	if !u.strict {
		return true
	}
	for _, s := range adjacency[from] {
		if s == to {
			return true
		}
	}
	return false
}

type TaskInput struct {
	Title       string `json:"title"`
	RequiresDoc bool   `json:"requires_doc"`
}

// UpdateStatus moves a credit to newStatusID, appending one audit entry and
// one system comment in the same transaction. When the target state is
// DEVUELTO-class the supplied checklist replaces the credit's tasks.
func (u *Usecase) UpdateStatus(ctx context.Context, creditID, newStatusID string, actor *user.User, comment string, tasks []TaskInput) error {
	if err := u.perms.Require(actor, user.PermChangeCreditStatus); err != nil {
		return err
	}
	if strings.TrimSpace(comment) == "" {
		return credit.ErrCommentRequired
	}

	var stateName string
	err := u.uow.WithinCreditTx(ctx, creditID, func(r uow.Repos, c *credit.Credit) error {
		st, err := r.States.GetByID(ctx, newStatusID)
		if err != nil {
			return credit.ErrStateNotConfigured
		}
		if !u.allowed(c.StatusID, newStatusID) {
			return credit.ErrInvalidTransition
		}
		if st.IsReturned && tasks == nil {
			return credit.ErrTasksRequired
		}

		c.StatusID = st.ID
		c.StateUpdatedAt = time.Now().UTC()
		if err := r.Credits.Save(ctx, c); err != nil {
			return err
		}

		if st.IsReturned {
			list := make([]credit.DevolucionTask, 0, len(tasks))
			for _, t := range tasks {
				list = append(list, credit.DevolucionTask{
					TaskID:      id.NewID32(),
					CreditRowID: c.ID,
					Title:       t.Title,
					RequiresDoc: t.RequiresDoc,
				})
			}
			if err := r.Credits.ReplaceTasks(ctx, c.ID, list); err != nil {
				return err
			}
		}

		h := &credit.HistoryEntry{
			EntryID:     id.NewID32(),
			CreditRowID: c.ID,
			ActorID:     actor.UserID,
			ActorName:   actor.Nombre,
			Action:      actionStatusChange,
			Descripcion: comment,
		}
		if err := r.Credits.AppendHistory(ctx, h); err != nil {
			return err
		}

		sys := &credit.Comment{
			CommentID:   id.NewID32(),
			CreditRowID: c.ID,
			AuthorID:    actor.UserID,
			Texto:       fmt.Sprintf("Nuevo Estado: %s - %s.", st.Nombre, st.ResponsibleRole),
			IsSystem:    true,
		}
		if err := r.Credits.AppendComment(ctx, sys); err != nil {
			return err
		}
		stateName = st.Nombre
		return nil
	})
	if err != nil {
		return err
	}
	u.emit(ctx, automation.Event{
		Type:      automation.EventCreditStatusChange,
		ActorRole: string(actor.Role),
		StateName: stateName,
		Payload:   map[string]any{"credit_id": creditID, "status_id": newStatusID},
	})
	return nil
}

// ToggleSubsanacion grants or revokes the owning gestor's temporary edit
// access. Gestores cannot toggle it for themselves.
func (u *Usecase) ToggleSubsanacion(ctx context.Context, creditID string, enable bool, actor *user.User) error {
	if err := u.perms.Require(actor, user.PermChangeCreditStatus); err != nil {
		return err
	}
	if actor.Role == user.RoleGestor {
		return permission.ErrDenied
	}
	return u.uow.WithinCreditTx(ctx, creditID, func(r uow.Repos, c *credit.Credit) error {
		c.SubsanacionHabilitada = enable
		if err := r.Credits.Save(ctx, c); err != nil {
			return err
		}
		desc := "Subsanación habilitada para el gestor"
		if !enable {
			desc = "Subsanación deshabilitada"
		}
		return r.Credits.AppendHistory(ctx, &credit.HistoryEntry{
			EntryID:     id.NewID32(),
			CreditRowID: c.ID,
			ActorID:     actor.UserID,
			ActorName:   actor.Nombre,
			Action:      "SUBSANACION",
			Descripcion: desc,
		})
	})
}

// Subsanar is the gestor-facing transition out of a returned state. It is
// rejected while any attached task is pending; the task list is preserved
// afterwards but no longer load-bearing.
func (u *Usecase) Subsanar(ctx context.Context, creditID string, actor *user.User) error {
	if actor == nil {
		return permission.ErrDenied
	}
	var stateName string
	err := u.uow.WithinCreditTx(ctx, creditID, func(r uow.Repos, c *credit.Credit) error {
		if c.AssignedGestorID != actor.UserID {
			return permission.ErrDenied
		}
		cur, err := r.States.GetByID(ctx, c.StatusID)
		if err != nil {
			return credit.ErrStateNotConfigured
		}
		if !cur.IsReturned {
			return credit.ErrInvalidTransition
		}
		// the target must exist in configuration; failing visibly beats
		// silently succeeding
		st, err := r.States.GetByID(ctx, credit.StateSubsanado)
		if err != nil {
			return credit.ErrStateNotConfigured
		}
		tasks, err := r.Credits.ListTasks(ctx, c.ID)
		if err != nil {
			return err
		}
		if !credit.AllTasksDone(tasks) {
			return credit.ErrTasksPending
		}

		c.StatusID = st.ID
		c.StateUpdatedAt = time.Now().UTC()
		if err := r.Credits.Save(ctx, c); err != nil {
			return err
		}
		if err := r.Credits.AppendHistory(ctx, &credit.HistoryEntry{
			EntryID:     id.NewID32(),
			CreditRowID: c.ID,
			ActorID:     actor.UserID,
			ActorName:   actor.Nombre,
			Action:      actionStatusChange,
			Descripcion: "Crédito subsanado por el gestor",
		}); err != nil {
			return err
		}
		sys := &credit.Comment{
			CommentID:   id.NewID32(),
			CreditRowID: c.ID,
			AuthorID:    actor.UserID,
			Texto:       fmt.Sprintf("Nuevo Estado: %s - %s.", st.Nombre, st.ResponsibleRole),
			IsSystem:    true,
		}
		if err := r.Credits.AppendComment(ctx, sys); err != nil {
			return err
		}
		stateName = st.Nombre
		return nil
	})
	if err != nil {
		return err
	}
	u.emit(ctx, automation.Event{
		Type:      automation.EventCreditStatusChange,
		ActorRole: string(actor.Role),
		StateName: stateName,
		Payload:   map[string]any{"credit_id": creditID, "status_id": credit.StateSubsanado},
	})
	return nil
}

// ExecuteStateAction runs a per-state quick action: appends its history entry
// and, when configured, chains the automatic transition through UpdateStatus.
func (u *Usecase) ExecuteStateAction(ctx context.Context, creditID string, actionID uint64, actor *user.User) error {
	if err := u.perms.Require(actor, user.PermChangeCreditStatus); err != nil {
		return err
	}
	var next *string
	err := u.uow.WithinCreditTx(ctx, creditID, func(r uow.Repos, c *credit.Credit) error {
		actions, err := r.States.ListActions(ctx, c.StatusID)
		if err != nil {
			return err
		}
		for i := range actions {
			if actions[i].ID != actionID {
				continue
			}
			if err := r.Credits.AppendHistory(ctx, &credit.HistoryEntry{
				EntryID:     id.NewID32(),
				CreditRowID: c.ID,
				ActorID:     actor.UserID,
				ActorName:   actor.Nombre,
				Action:      actions[i].HistoryAction,
				Descripcion: actions[i].Label,
			}); err != nil {
				return err
			}
			next = actions[i].NextStateID
			return nil
		}
		return credit.ErrStateNotConfigured
	})
	if err != nil {
		return err
	}
	if next != nil {
		return u.UpdateStatus(ctx, creditID, *next, actor, "Transición automática por acción rápida", nil)
	}
	return nil
}

func (u *Usecase) emit(ctx context.Context, ev automation.Event) {
	if u.notifier != nil {
		ev.At = time.Now().UTC()
		u.notifier.Emit(ctx, ev)
	}
}
