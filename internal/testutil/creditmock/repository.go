package creditmock

import (
	"context"
	"errors"

	domain "creditos-backoffice/internal/domain/credit"
)

var errUnimplemented = errors.New("creditmock: method not implemented")

// Repo is a function-backed mock that satisfies credit.Repository.
// Fill in the function fields a test needs; unfilled ones return a
// not-implemented error (or succeed for write methods).
type Repo struct {
	CreateFn                 func(ctx context.Context, c *domain.Credit) error
	SaveFn                   func(ctx context.Context, c *domain.Credit) error
	GetByCreditIDFn          func(ctx context.Context, creditID string) (*domain.Credit, error)
	GetByCreditIDForUpdateFn func(ctx context.Context, creditID string) (*domain.Credit, error)
	ListFn                   func(ctx context.Context, f domain.ListFilter) ([]domain.Credit, error)
	NextSolicitudNumberFn    func(ctx context.Context) (uint64, error)
	SoftDeleteFn             func(ctx context.Context, c *domain.Credit, deletedBy string) error

	AppendHistoryFn func(ctx context.Context, h *domain.HistoryEntry) error
	ListHistoryFn   func(ctx context.Context, creditRowID uint64) ([]domain.HistoryEntry, error)

	AppendCommentFn func(ctx context.Context, cm *domain.Comment) error
	ListCommentsFn  func(ctx context.Context, creditRowID uint64) ([]domain.Comment, error)

	AddDocumentFn   func(ctx context.Context, d *domain.Document) error
	ListDocumentsFn func(ctx context.Context, creditRowID uint64) ([]domain.Document, error)

	ReplaceTasksFn     func(ctx context.Context, creditRowID uint64, tasks []domain.DevolucionTask) error
	ListTasksFn        func(ctx context.Context, creditRowID uint64) ([]domain.DevolucionTask, error)
	GetTaskForUpdateFn func(ctx context.Context, creditRowID uint64, taskID string) (*domain.DevolucionTask, error)
	SaveTaskFn         func(ctx context.Context, t *domain.DevolucionTask) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Credit) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Credit) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByCreditID(ctx context.Context, creditID string) (*domain.Credit, error) {
	if m.GetByCreditIDFn != nil {
		return m.GetByCreditIDFn(ctx, creditID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByCreditIDForUpdate(ctx context.Context, creditID string) (*domain.Credit, error) {
	if m.GetByCreditIDForUpdateFn != nil {
		return m.GetByCreditIDForUpdateFn(ctx, creditID)
	}
	return nil, errUnimplemented
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Credit, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, errUnimplemented
}

func (m *Repo) NextSolicitudNumber(ctx context.Context) (uint64, error) {
	if m.NextSolicitudNumberFn != nil {
		return m.NextSolicitudNumberFn(ctx)
	}
	return 1, nil
}

func (m *Repo) SoftDelete(ctx context.Context, c *domain.Credit, deletedBy string) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, c, deletedBy)
	}
	return nil
}

func (m *Repo) AppendHistory(ctx context.Context, h *domain.HistoryEntry) error {
	if m.AppendHistoryFn != nil {
		return m.AppendHistoryFn(ctx, h)
	}
	return nil
}

func (m *Repo) ListHistory(ctx context.Context, creditRowID uint64) ([]domain.HistoryEntry, error) {
	if m.ListHistoryFn != nil {
		return m.ListHistoryFn(ctx, creditRowID)
	}
	return nil, nil
}

func (m *Repo) AppendComment(ctx context.Context, cm *domain.Comment) error {
	if m.AppendCommentFn != nil {
		return m.AppendCommentFn(ctx, cm)
	}
	return nil
}

func (m *Repo) ListComments(ctx context.Context, creditRowID uint64) ([]domain.Comment, error) {
	if m.ListCommentsFn != nil {
		return m.ListCommentsFn(ctx, creditRowID)
	}
	return nil, nil
}

func (m *Repo) AddDocument(ctx context.Context, d *domain.Document) error {
	if m.AddDocumentFn != nil {
		return m.AddDocumentFn(ctx, d)
	}
	return nil
}

func (m *Repo) ListDocuments(ctx context.Context, creditRowID uint64) ([]domain.Document, error) {
	if m.ListDocumentsFn != nil {
		return m.ListDocumentsFn(ctx, creditRowID)
	}
	return nil, nil
}

func (m *Repo) ReplaceTasks(ctx context.Context, creditRowID uint64, tasks []domain.DevolucionTask) error {
	if m.ReplaceTasksFn != nil {
		return m.ReplaceTasksFn(ctx, creditRowID, tasks)
	}
	return nil
}

func (m *Repo) ListTasks(ctx context.Context, creditRowID uint64) ([]domain.DevolucionTask, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, creditRowID)
	}
	return nil, nil
}

func (m *Repo) GetTaskForUpdate(ctx context.Context, creditRowID uint64, taskID string) (*domain.DevolucionTask, error) {
	if m.GetTaskForUpdateFn != nil {
		return m.GetTaskForUpdateFn(ctx, creditRowID, taskID)
	}
	return nil, errUnimplemented
}

func (m *Repo) SaveTask(ctx context.Context, t *domain.DevolucionTask) error {
	if m.SaveTaskFn != nil {
		return m.SaveTaskFn(ctx, t)
	}
	return nil
}
