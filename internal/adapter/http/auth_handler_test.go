package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"testing"
	"time"

	"creditos-backoffice/internal/auth"
	userDomain "creditos-backoffice/internal/domain/user"
	"creditos-backoffice/internal/testutil/usermock"
	"creditos-backoffice/internal/usecase/users"

	"gorm.io/gorm"
)

func newAuthHandler(repo *usermock.Repo) *AuthHandler {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	return NewAuthHandler(users.NewUsecase(repo, newPerms(), tokens, nil))
}

func TestRegister_SelfServiceIsGestor(t *testing.T) {
	e := newEchoWithValidator()
	var created *userDomain.User
	repo := &usermock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*userDomain.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, u *userDomain.User) error {
			created = u
			return nil
		},
	}
	h := newAuthHandler(repo)

	body := mustJSON(map[string]any{
		"email":    "nuevo@example.com",
		"password": "s3cret-pass",
		"nombre":   "Nuevo Gestor",
	})
	c, rec := newCtx(e, stdhttp.MethodPost, "/auth/register", body, nil)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if created == nil || created.Role != userDomain.RoleGestor || !created.Activo {
		t.Fatalf("created = %+v", created)
	}
	if created.PasswordHash == "" || created.PasswordHash == "s3cret-pass" {
		t.Error("password stored unhashed")
	}
	// the hash never leaves the API
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if _, leaked := out["PasswordHash"]; leaked {
		t.Error("password hash leaked in response")
	}
}

func TestRegister_PrivilegedRoleNeedsActor(t *testing.T) {
	e := newEchoWithValidator()
	h := newAuthHandler(&usermock.Repo{})

	body := mustJSON(map[string]any{
		"email":    "nuevo@example.com",
		"password": "s3cret-pass",
		"nombre":   "Aspirante",
		"role":     "ANALISTA",
	})
	// anonymous caller asking for a privileged role
	c, rec := newCtx(e, stdhttp.MethodPost, "/auth/register", body, nil)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	e := newEchoWithValidator()
	repo := &usermock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*userDomain.User, error) {
			return &userDomain.User{Email: email}, nil
		},
	}
	h := newAuthHandler(repo)

	body := mustJSON(map[string]any{
		"email":    "dup@example.com",
		"password": "s3cret-pass",
		"nombre":   "Duplicado",
	})
	c, rec := newCtx(e, stdhttp.MethodPost, "/auth/register", body, nil)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestRegister_Validation(t *testing.T) {
	e := newEchoWithValidator()
	h := newAuthHandler(&usermock.Repo{})

	body := mustJSON(map[string]any{
		"email":    "not-an-email",
		"password": "short",
		"role":     "SUPERADMIN",
	})
	c, rec := newCtx(e, stdhttp.MethodPost, "/auth/register", body, nil)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	fields := map[string]bool{}
	for _, fe := range resp.Details {
		fields[fe.Field] = true
	}
	for _, want := range []string{"email", "password", "nombre", "role"} {
		if !fields[want] {
			t.Errorf("missing field error for %q in %+v", want, resp.Details)
		}
	}
}

func TestLogin(t *testing.T) {
	e := newEchoWithValidator()
	hash, err := auth.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := &usermock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*userDomain.User, error) {
			return &userDomain.User{
				UserID:       gestorID,
				Email:        email,
				PasswordHash: hash,
				Role:         userDomain.RoleGestor,
				Activo:       true,
			}, nil
		},
	}
	h := newAuthHandler(repo)

	body := mustJSON(map[string]any{"email": "g@example.com", "password": "s3cret-pass"})
	c, rec := newCtx(e, stdhttp.MethodPost, "/auth/login", body, nil)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res users.LoginResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if res.Token == "" || res.User == nil || res.User.UserID != gestorID {
		t.Fatalf("login result = %+v", res)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	e := newEchoWithValidator()
	hash, _ := auth.HashPassword("correct-pass")
	repo := &usermock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*userDomain.User, error) {
			return &userDomain.User{Email: email, PasswordHash: hash, Activo: true}, nil
		},
	}
	h := newAuthHandler(repo)

	body := mustJSON(map[string]any{"email": "g@example.com", "password": "wrong-pass"})
	c, rec := newCtx(e, stdhttp.MethodPost, "/auth/login", body, nil)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	e := newEchoWithValidator()
	hash, _ := auth.HashPassword("s3cret-pass")
	repo := &usermock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*userDomain.User, error) {
			return &userDomain.User{Email: email, PasswordHash: hash, Activo: false}, nil
		},
	}
	h := newAuthHandler(repo)

	body := mustJSON(map[string]any{"email": "g@example.com", "password": "s3cret-pass"})
	c, rec := newCtx(e, stdhttp.MethodPost, "/auth/login", body, nil)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
