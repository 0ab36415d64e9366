package permission

import (
	"testing"

	"creditos-backoffice/internal/domain/user"
)

func TestHas_NilUser(t *testing.T) {
	e := NewEvaluator()
	if e.Has(nil, user.PermCreateCredit) {
		t.Fatal("nil user must have no permissions")
	}
}

func TestHas_AdminAlwaysTrue(t *testing.T) {
	e := NewEvaluator()
	admin := &user.User{Role: user.RoleAdmin}
	perms := []user.Permission{
		user.PermCreateCredit, user.PermChangeCreditStatus, user.PermDeleteCredit,
		user.PermMarkCommissionPaid, user.PermManageUsers, user.PermExportData,
		user.PermProcessWithdrawals, user.PermManageAutomations, user.PermManageNews,
	}
	for _, p := range perms {
		if !e.Has(admin, p) {
			t.Fatalf("admin denied %s", p)
		}
	}
}

func TestHas_RoleDefaults(t *testing.T) {
	e := NewEvaluator()
	for role, defaults := range user.RoleDefaults {
		u := &user.User{Role: role}
		granted := make(map[user.Permission]bool, len(defaults))
		for _, p := range defaults {
			granted[p] = true
		}
		// every permission in the closed set must match membership exactly
		all := []user.Permission{
			user.PermCreateCredit, user.PermViewOwnCredits, user.PermViewAllCredits,
			user.PermEditCreditInfo, user.PermDeleteCredit, user.PermChangeCreditStatus,
			user.PermToggleSubsanacion, user.PermAssignAnalystManual,
			user.PermMarkCommissionPaid, user.PermAddComment, user.PermUploadDocument,
			user.PermRequestWithdrawal, user.PermProcessWithdrawals,
			user.PermManageUsers, user.PermManageStates, user.PermManageAutomations,
			user.PermManageNews, user.PermViewReports, user.PermExportData,
		}
		for _, p := range all {
			if got := e.Has(u, p); got != granted[p] {
				t.Fatalf("role %s perm %s: got %v want %v", role, p, got, granted[p])
			}
		}
	}
}

func TestHas_ExplicitListOverridesRole(t *testing.T) {
	e := NewEvaluator()
	u := &user.User{
		Role:        user.RoleGestor,
		Permissions: []user.Permission{user.PermExportData},
	}
	if !e.Has(u, user.PermExportData) {
		t.Fatal("explicit permission not honored")
	}
	// CREATE_CREDIT is a gestor default but the explicit list replaces defaults
	if e.Has(u, user.PermCreateCredit) {
		t.Fatal("explicit list must be used verbatim, not merged with role defaults")
	}
}

func TestRequire(t *testing.T) {
	e := NewEvaluator()
	if err := e.Require(&user.User{Role: user.RoleGestor}, user.PermCreateCredit); err != nil {
		t.Fatalf("Require: %v", err)
	}
	if err := e.Require(&user.User{Role: user.RoleGestor}, user.PermManageUsers); err != ErrDenied {
		t.Fatalf("want ErrDenied, got %v", err)
	}
}
