package credit

import "context"

type ListFilter struct {
	GestorID  string
	AnalystID string
	StatusID  string
}

type Repository interface {
	Create(ctx context.Context, c *Credit) error
	Save(ctx context.Context, c *Credit) error
	GetByCreditID(ctx context.Context, creditID string) (*Credit, error)
	// GetByCreditIDForUpdate locks the row for the duration of the tx.
	GetByCreditIDForUpdate(ctx context.Context, creditID string) (*Credit, error)
	List(ctx context.Context, f ListFilter) ([]Credit, error)
	NextSolicitudNumber(ctx context.Context) (uint64, error)
	// SoftDelete stamps deleted_by and soft-deletes the row.
	SoftDelete(ctx context.Context, c *Credit, deletedBy string) error

	AppendHistory(ctx context.Context, h *HistoryEntry) error
	ListHistory(ctx context.Context, creditRowID uint64) ([]HistoryEntry, error)

	AppendComment(ctx context.Context, cm *Comment) error
	ListComments(ctx context.Context, creditRowID uint64) ([]Comment, error)

	AddDocument(ctx context.Context, d *Document) error
	ListDocuments(ctx context.Context, creditRowID uint64) ([]Document, error)

	// ReplaceTasks drops the credit's current checklist and installs a new one.
	ReplaceTasks(ctx context.Context, creditRowID uint64, tasks []DevolucionTask) error
	ListTasks(ctx context.Context, creditRowID uint64) ([]DevolucionTask, error)
	GetTaskForUpdate(ctx context.Context, creditRowID uint64, taskID string) (*DevolucionTask, error)
	SaveTask(ctx context.Context, t *DevolucionTask) error
}

type StateRepository interface {
	GetByID(ctx context.Context, id string) (*CreditState, error)
	List(ctx context.Context) ([]CreditState, error)
	ListActions(ctx context.Context, stateID string) ([]StateAction, error)
}
