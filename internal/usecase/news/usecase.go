package news

import (
	"context"

	"creditos-backoffice/internal/domain/news"
	"creditos-backoffice/internal/domain/user"
	"creditos-backoffice/internal/usecase/permission"
	"creditos-backoffice/pkg/id"
)

type Usecase struct {
	repo  news.Repository
	perms *permission.Evaluator
}

func NewUsecase(repo news.Repository, perms *permission.Evaluator) *Usecase {
	return &Usecase{repo: repo, perms: perms}
}

func (u *Usecase) Create(ctx context.Context, titulo, cuerpo string, actor *user.User) (*news.Item, error) {
	if err := u.perms.Require(actor, user.PermManageNews); err != nil {
		return nil, err
	}
	n := &news.Item{ItemID: id.NewID32(), Titulo: titulo, Cuerpo: cuerpo, AuthorID: actor.UserID}
	if err := u.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (u *Usecase) Update(ctx context.Context, itemID, titulo, cuerpo string, actor *user.User) (*news.Item, error) {
	if err := u.perms.Require(actor, user.PermManageNews); err != nil {
		return nil, err
	}
	n, err := u.repo.GetByItemID(ctx, itemID)
	if err != nil {
		return nil, news.ErrNotFound
	}
	n.Titulo = titulo
	n.Cuerpo = cuerpo
	if err := u.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (u *Usecase) Delete(ctx context.Context, itemID string, actor *user.User) error {
	if err := u.perms.Require(actor, user.PermManageNews); err != nil {
		return err
	}
	return u.repo.Delete(ctx, itemID)
}

// List is visible to every authenticated user.
func (u *Usecase) List(ctx context.Context, actor *user.User) ([]news.Item, error) {
	if actor == nil {
		return nil, permission.ErrDenied
	}
	return u.repo.List(ctx)
}
