package workflow

import (
	"context"
	"strings"
	"time"

	"creditos-backoffice/internal/domain/credit"
	"creditos-backoffice/internal/domain/uow"
	"creditos-backoffice/internal/domain/user"
	"creditos-backoffice/internal/usecase/permission"
)

type CompleteTaskInput struct {
	DocURL  string `json:"doc_url,omitempty"`
	DocName string `json:"doc_name,omitempty"`
	Text    string `json:"text,omitempty"`
}

// CompleteTask marks one remediation item done. Only the owning gestor may
// complete tasks; a completed task is immutable and the payload shape must
// match the task's requires_doc flag.
func (u *Usecase) CompleteTask(ctx context.Context, creditID, taskID string, actor *user.User, in CompleteTaskInput) (*credit.DevolucionTask, error) {
	if actor == nil {
		return nil, permission.ErrDenied
	}
	var done *credit.DevolucionTask
	err := u.uow.WithinCreditTx(ctx, creditID, func(r uow.Repos, c *credit.Credit) error {
		if c.AssignedGestorID != actor.UserID {
			return permission.ErrDenied
		}
		t, err := r.Credits.GetTaskForUpdate(ctx, c.ID, taskID)
		if err != nil {
			return credit.ErrTaskNotFound
		}
		if t.Completed {
			return credit.ErrTaskCompleted
		}

		hasDoc := in.DocURL != ""
		hasText := strings.TrimSpace(in.Text) != ""
		if t.RequiresDoc && !hasDoc {
			return credit.ErrCompletionMismatch
		}
		if !t.RequiresDoc && (!hasText || hasDoc) {
			return credit.ErrCompletionMismatch
		}

		now := time.Now().UTC()
		t.Completed = true
		t.CompletedAt = &now
		t.CompletedBy = actor.UserID
		if t.RequiresDoc {
			t.DocURL = in.DocURL
			t.DocName = in.DocName
		} else {
			t.CompletionText = in.Text
		}
		if err := r.Credits.SaveTask(ctx, t); err != nil {
			return err
		}
		done = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return done, nil
}
