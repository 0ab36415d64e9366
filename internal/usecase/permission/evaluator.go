package permission

import (
	"errors"

	"creditos-backoffice/internal/domain/user"
)

var ErrDenied = errors.New("permission denied")

// Evaluator is the single authorization check point. Purely advisory for
// reads; mutating usecases call Require before touching anything.
type Evaluator struct{}

func NewEvaluator() *Evaluator { return &Evaluator{} }

func (e *Evaluator) Has(u *user.User, p user.Permission) bool {
	if u == nil {
		return false
	}
	if u.Role == user.RoleAdmin {
		return true
	}
	// A non-empty explicit list overrides the role defaults verbatim.
	if len(u.Permissions) > 0 {
		for _, have := range u.Permissions {
			if have == p {
				return true
			}
		}
		return false
	}
	for _, have := range user.RoleDefaults[u.Role] {
		if have == p {
			return true
		}
	}
	return false
}

func (e *Evaluator) Require(u *user.User, p user.Permission) error {
	if !e.Has(u, p) {
		return ErrDenied
	}
	return nil
}
