package credit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"creditos-backoffice/internal/domain/automation"
	"creditos-backoffice/internal/domain/credit"
	"creditos-backoffice/internal/domain/reference"
	"creditos-backoffice/internal/domain/uow"
	"creditos-backoffice/internal/domain/user"
	"creditos-backoffice/internal/usecase/permission"
	"creditos-backoffice/pkg/id"

	"gorm.io/gorm"
)

// Notifier fans mutations out to the automation dispatcher. Emission is
// best-effort and never fails the calling mutation.
type Notifier interface {
	Emit(ctx context.Context, ev automation.Event)
}

type Usecase struct {
	repo     credit.Repository
	states   credit.StateRepository
	perms    *permission.Evaluator
	uow      uow.UnitOfWork
	notifier Notifier
}

func NewUsecase(repo credit.Repository, states credit.StateRepository, perms *permission.Evaluator, tx uow.UnitOfWork, n Notifier) *Usecase {
	return &Usecase{repo: repo, states: states, perms: perms, uow: tx, notifier: n}
}

func (u *Usecase) emit(ctx context.Context, ev automation.Event) {
	if u.notifier != nil {
		ev.At = time.Now().UTC()
		u.notifier.Emit(ctx, ev)
	}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput, actor *user.User) (*credit.Credit, error) {
	if err := u.perms.Require(actor, user.PermCreateCredit); err != nil {
		return nil, err
	}
	if in.Monto <= 0 || in.Plazo <= 0 {
		return nil, errors.New("invalid input: monto and plazo must be positive")
	}
	entity := reference.EntityByName(in.EntidadAliada)
	if entity == nil {
		return nil, fmt.Errorf("unknown allied entity %q", in.EntidadAliada)
	}
	if reference.LineByName(in.Linea) == nil {
		return nil, fmt.Errorf("unknown credit line %q", in.Linea)
	}

	var created *credit.Credit
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.States.GetByID(ctx, credit.StateRadicado); err != nil {
			return credit.ErrStateNotConfigured
		}
		num, err := r.Credits.NextSolicitudNumber(ctx)
		if err != nil {
			return err
		}
		c := &credit.Credit{
			CreditID:             id.NewID32(),
			SolicitudNumber:      num,
			AssignedGestorID:     actor.UserID,
			StatusID:             credit.StateRadicado,
			Linea:                in.Linea,
			Monto:                in.Monto,
			Plazo:                in.Plazo,
			Tasa:                 entity.TasaMensual,
			EntidadAliada:        in.EntidadAliada,
			CommissionPercentage: entity.CommissionRate,
			EstimatedCommission:  in.Monto * entity.CommissionRate,
			Cliente:              in.Cliente,
			StateUpdatedAt:       time.Now().UTC(),
		}
		if c.Cliente.Version == 0 {
			c.Cliente.Version = credit.ProfileVersion
		}
		if err := r.Credits.Create(ctx, c); err != nil {
			return err
		}
		h := &credit.HistoryEntry{
			EntryID:     id.NewID32(),
			CreditRowID: c.ID,
			ActorID:     actor.UserID,
			ActorName:   actor.Nombre,
			Action:      "CREACION",
			Descripcion: fmt.Sprintf("Solicitud #%d radicada", c.SolicitudNumber),
		}
		if err := r.Credits.AppendHistory(ctx, h); err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.emit(ctx, automation.Event{
		Type:      automation.EventCreditCreated,
		ActorRole: string(actor.Role),
		Payload:   map[string]any{"credit_id": created.CreditID, "monto": created.Monto},
	})
	return created, nil
}

// Detail bundles the credit with its sub-collections for the detail view.
type Detail struct {
	Credit    *credit.Credit          `json:"credit"`
	Tasks     []credit.DevolucionTask `json:"tasks"`
	Comments  []credit.Comment        `json:"comments"`
	Documents []credit.Document       `json:"documents"`
	History   []credit.HistoryEntry   `json:"history"`
}

func (u *Usecase) Get(ctx context.Context, creditID string, actor *user.User) (*Detail, error) {
	c, err := u.repo.GetByCreditID(ctx, creditID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, credit.ErrNotFound
		}
		return nil, err
	}
	if !u.canView(actor, c) {
		return nil, permission.ErrDenied
	}
	d := &Detail{Credit: c}
	if d.Tasks, err = u.repo.ListTasks(ctx, c.ID); err != nil {
		return nil, err
	}
	if d.Comments, err = u.repo.ListComments(ctx, c.ID); err != nil {
		return nil, err
	}
	if d.Documents, err = u.repo.ListDocuments(ctx, c.ID); err != nil {
		return nil, err
	}
	if d.History, err = u.repo.ListHistory(ctx, c.ID); err != nil {
		return nil, err
	}
	return d, nil
}

func (u *Usecase) List(ctx context.Context, f credit.ListFilter, actor *user.User) ([]credit.Credit, error) {
	if !u.perms.Has(actor, user.PermViewAllCredits) {
		// gestores see their own book only
		if !u.perms.Has(actor, user.PermViewOwnCredits) {
			return nil, permission.ErrDenied
		}
		f.GestorID = actor.UserID
	}
	return u.repo.List(ctx, f)
}

func (u *Usecase) canView(actor *user.User, c *credit.Credit) bool {
	if u.perms.Has(actor, user.PermViewAllCredits) {
		return true
	}
	return u.perms.Has(actor, user.PermViewOwnCredits) && actor != nil && c.AssignedGestorID == actor.UserID
}

// UpdateData persists edited fields. Holders of EDIT_CREDIT_INFO may change
// everything; the owning gestor may edit only while subsanación is enabled,
// financial locked fields are stripped, and the flag is cleared in the same
// transaction.
func (u *Usecase) UpdateData(ctx context.Context, creditID string, in UpdateDataInput, actor *user.User) (*credit.Credit, error) {
	var updated *credit.Credit
	err := u.uow.WithinCreditTx(ctx, creditID, func(r uow.Repos, c *credit.Credit) error {
		fullEdit := u.perms.Has(actor, user.PermEditCreditInfo)
		gestorEdit := actor != nil && actor.Role == user.RoleGestor &&
			c.AssignedGestorID == actor.UserID && c.SubsanacionHabilitada
		if !fullEdit && !gestorEdit {
			return permission.ErrDenied
		}

		if in.Cliente != nil {
			profile := *in.Cliente
			if profile.Version == 0 {
				profile.Version = credit.ProfileVersion
			}
			c.Cliente = profile
		}
		if fullEdit {
			applyFinancial(c, in)
		}
		if gestorEdit && !fullEdit {
			// saving during subsanación hands control back to the analyst
			c.SubsanacionHabilitada = false
		}
		if err := r.Credits.Save(ctx, c); err != nil {
			return err
		}
		h := &credit.HistoryEntry{
			EntryID:     id.NewID32(),
			CreditRowID: c.ID,
			ActorID:     actor.UserID,
			ActorName:   actor.Nombre,
			Action:      "EDICION",
			Descripcion: "Datos de la solicitud actualizados",
		}
		if err := r.Credits.AppendHistory(ctx, h); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func applyFinancial(c *credit.Credit, in UpdateDataInput) {
	if in.Linea != nil {
		c.Linea = *in.Linea
	}
	if in.Monto != nil {
		c.Monto = *in.Monto
	}
	if in.Plazo != nil {
		c.Plazo = *in.Plazo
	}
	if in.Tasa != nil {
		c.Tasa = *in.Tasa
	}
	if in.Cuota != nil {
		c.Cuota = *in.Cuota
	}
	if in.EntidadAliada != nil {
		c.EntidadAliada = *in.EntidadAliada
		if e := reference.EntityByName(c.EntidadAliada); e != nil {
			c.CommissionPercentage = e.CommissionRate
		}
	}
	c.EstimatedCommission = c.Monto * c.CommissionPercentage
}

func (u *Usecase) AssignAnalyst(ctx context.Context, creditID, analystID string, actor *user.User) error {
	if err := u.perms.Require(actor, user.PermAssignAnalystManual); err != nil {
		return err
	}
	return u.uow.WithinCreditTx(ctx, creditID, func(r uow.Repos, c *credit.Credit) error {
		a, err := r.Users.GetByUserID(ctx, analystID)
		if err != nil {
			return user.ErrNotFound
		}
		c.AssignedAnalystID = a.UserID
		if err := r.Credits.Save(ctx, c); err != nil {
			return err
		}
		return r.Credits.AppendHistory(ctx, &credit.HistoryEntry{
			EntryID:     id.NewID32(),
			CreditRowID: c.ID,
			ActorID:     actor.UserID,
			ActorName:   actor.Nombre,
			Action:      "ASIGNACION ANALISTA",
			Descripcion: fmt.Sprintf("Analista asignado: %s", a.Nombre),
		})
	})
}

func (u *Usecase) MarkCommissionPaid(ctx context.Context, creditID string, paid bool, actor *user.User) error {
	if err := u.perms.Require(actor, user.PermMarkCommissionPaid); err != nil {
		return err
	}
	return u.uow.WithinCreditTx(ctx, creditID, func(r uow.Repos, c *credit.Credit) error {
		c.ComisionPagada = paid
		if paid {
			now := time.Now().UTC()
			c.FechaPagoComision = &now
		} else {
			c.FechaPagoComision = nil
		}
		if err := r.Credits.Save(ctx, c); err != nil {
			return err
		}
		desc := "Comisión marcada como pagada"
		if !paid {
			desc = "Comisión marcada como pendiente"
		}
		return r.Credits.AppendHistory(ctx, &credit.HistoryEntry{
			EntryID:     id.NewID32(),
			CreditRowID: c.ID,
			ActorID:     actor.UserID,
			ActorName:   actor.Nombre,
			Action:      "COMISION",
			Descripcion: desc,
		})
	})
}

func (u *Usecase) AddComment(ctx context.Context, creditID, texto, attachmentURL string, actor *user.User) (*credit.Comment, error) {
	if err := u.perms.Require(actor, user.PermAddComment); err != nil {
		return nil, err
	}
	c, err := u.repo.GetByCreditID(ctx, creditID)
	if err != nil {
		return nil, credit.ErrNotFound
	}
	if !u.canView(actor, c) {
		return nil, permission.ErrDenied
	}
	cm := &credit.Comment{
		CommentID:     id.NewID32(),
		CreditRowID:   c.ID,
		AuthorID:      actor.UserID,
		Texto:         texto,
		AttachmentURL: attachmentURL,
	}
	if err := u.repo.AppendComment(ctx, cm); err != nil {
		return nil, err
	}
	u.emit(ctx, automation.Event{
		Type:      automation.EventCommentAdded,
		ActorRole: string(actor.Role),
		Payload:   map[string]any{"credit_id": c.CreditID, "comment_id": cm.CommentID},
	})
	return cm, nil
}

func (u *Usecase) AddDocument(ctx context.Context, creditID, tipo, nombre, url string, actor *user.User) (*credit.Document, error) {
	if err := u.perms.Require(actor, user.PermUploadDocument); err != nil {
		return nil, err
	}
	c, err := u.repo.GetByCreditID(ctx, creditID)
	if err != nil {
		return nil, credit.ErrNotFound
	}
	if !u.canView(actor, c) {
		return nil, permission.ErrDenied
	}
	d := &credit.Document{
		DocumentID:  id.NewID32(),
		CreditRowID: c.ID,
		Tipo:        tipo,
		Nombre:      nombre,
		URL:         url,
		UploadedBy:  actor.UserID,
	}
	if err := u.repo.AddDocument(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete soft-deletes a credit after writing a final audit entry, in one tx.
func (u *Usecase) Delete(ctx context.Context, creditID string, actor *user.User) error {
	if err := u.perms.Require(actor, user.PermDeleteCredit); err != nil {
		return err
	}
	return u.uow.WithinCreditTx(ctx, creditID, func(r uow.Repos, c *credit.Credit) error {
		h := &credit.HistoryEntry{
			EntryID:     id.NewID32(),
			CreditRowID: c.ID,
			ActorID:     actor.UserID,
			ActorName:   actor.Nombre,
			Action:      "ELIMINACION",
			Descripcion: fmt.Sprintf("Solicitud #%d eliminada", c.SolicitudNumber),
		}
		if err := r.Credits.AppendHistory(ctx, h); err != nil {
			return err
		}
		return r.Credits.SoftDelete(ctx, c, actor.UserID)
	})
}
