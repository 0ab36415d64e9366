package users

import (
	"context"
	"errors"
	"time"

	"creditos-backoffice/internal/auth"
	"creditos-backoffice/internal/domain/automation"
	"creditos-backoffice/internal/domain/user"
	"creditos-backoffice/internal/usecase/permission"
	"creditos-backoffice/pkg/id"

	"gorm.io/gorm"
)

type Notifier interface {
	Emit(ctx context.Context, ev automation.Event)
}

type Usecase struct {
	repo     user.Repository
	perms    *permission.Evaluator
	tokens   *auth.TokenIssuer
	notifier Notifier
}

func NewUsecase(repo user.Repository, perms *permission.Evaluator, tokens *auth.TokenIssuer, n Notifier) *Usecase {
	return &Usecase{repo: repo, perms: perms, tokens: tokens, notifier: n}
}

type RegisterInput struct {
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Nombre   string    `json:"nombre"`
	Role     user.Role `json:"role"`
	Zona     string    `json:"zona,omitempty"`
}

// Register creates a user. Self-registration lands in GESTOR; creating any
// other role requires MANAGE_USERS on the acting user.
func (u *Usecase) Register(ctx context.Context, in RegisterInput, actor *user.User) (*user.User, error) {
	if in.Role == "" {
		in.Role = user.RoleGestor
	}
	if in.Role != user.RoleGestor {
		if err := u.perms.Require(actor, user.PermManageUsers); err != nil {
			return nil, err
		}
	}
	if _, err := u.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, user.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	nu := &user.User{
		UserID:       id.NewID32(),
		Email:        in.Email,
		PasswordHash: hash,
		Nombre:       in.Nombre,
		Role:         in.Role,
		Zona:         in.Zona,
		Activo:       true,
	}
	if err := u.repo.Create(ctx, nu); err != nil {
		return nil, err
	}
	if u.notifier != nil {
		u.notifier.Emit(ctx, automation.Event{
			Type:    automation.EventUserRegistered,
			Payload: map[string]any{"user_id": nu.UserID, "role": string(nu.Role)},
			At:      time.Now().UTC(),
		})
	}
	return nu, nil
}

type LoginResult struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

func (u *Usecase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	found, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, user.ErrBadCredentials
	}
	if !found.Activo || !auth.CheckPassword(found.PasswordHash, password) {
		return nil, user.ErrBadCredentials
	}
	token, err := u.tokens.Issue(found.UserID, string(found.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: found}, nil
}

func (u *Usecase) Get(ctx context.Context, userID string) (*user.User, error) {
	found, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, user.ErrNotFound
	}
	return found, nil
}

func (u *Usecase) List(ctx context.Context, actor *user.User) ([]user.User, error) {
	if err := u.perms.Require(actor, user.PermManageUsers); err != nil {
		return nil, err
	}
	return u.repo.List(ctx)
}

type UpdateInput struct {
	Nombre      *string            `json:"nombre,omitempty"`
	Role        *user.Role         `json:"role,omitempty"`
	Zona        *string            `json:"zona,omitempty"`
	Activo      *bool              `json:"activo,omitempty"`
	Permissions *[]user.Permission `json:"permissions,omitempty"`
}

// Update edits another user's account; MANAGE_USERS only. Setting
// Permissions to a non-empty list overrides the role defaults verbatim;
// setting it to an empty list restores them.
func (u *Usecase) Update(ctx context.Context, userID string, in UpdateInput, actor *user.User) (*user.User, error) {
	if err := u.perms.Require(actor, user.PermManageUsers); err != nil {
		return nil, err
	}
	found, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, user.ErrNotFound
	}
	if in.Nombre != nil {
		found.Nombre = *in.Nombre
	}
	if in.Role != nil {
		found.Role = *in.Role
	}
	if in.Zona != nil {
		found.Zona = *in.Zona
	}
	if in.Activo != nil {
		found.Activo = *in.Activo
	}
	if in.Permissions != nil {
		found.Permissions = *in.Permissions
	}
	if err := u.repo.Save(ctx, found); err != nil {
		return nil, err
	}
	return found, nil
}
