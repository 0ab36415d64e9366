package mysql

import (
	"context"

	creditDomain "creditos-backoffice/internal/domain/credit"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreditRepository struct{ db *gorm.DB }

func NewCreditRepository(db *gorm.DB) *CreditRepository { return &CreditRepository{db: db} }

// forUpdate adds a row lock on MySQL; sqlite (used in tests) has no FOR UPDATE.
func forUpdate(q *gorm.DB) *gorm.DB {
	if q.Dialector.Name() == "mysql" {
		return q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

func (r *CreditRepository) Create(ctx context.Context, c *creditDomain.Credit) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CreditRepository) Save(ctx context.Context, c *creditDomain.Credit) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CreditRepository) GetByCreditID(ctx context.Context, creditID string) (*creditDomain.Credit, error) {
	var out creditDomain.Credit
	res := r.db.WithContext(ctx).Where("credit_id = ?", creditID).First(&out)
	return &out, res.Error
}

func (r *CreditRepository) GetByCreditIDForUpdate(ctx context.Context, creditID string) (*creditDomain.Credit, error) {
	var out creditDomain.Credit
	res := forUpdate(r.db.WithContext(ctx)).
		Where("credit_id = ?", creditID).
		First(&out)
	return &out, res.Error
}

func (r *CreditRepository) List(ctx context.Context, f creditDomain.ListFilter) ([]creditDomain.Credit, error) {
	q := r.db.WithContext(ctx).Model(&creditDomain.Credit{})
	if f.GestorID != "" {
		q = q.Where("assigned_gestor_id = ?", f.GestorID)
	}
	if f.AnalystID != "" {
		q = q.Where("assigned_analyst_id = ?", f.AnalystID)
	}
	if f.StatusID != "" {
		q = q.Where("status_id = ?", f.StatusID)
	}
	var out []creditDomain.Credit
	res := q.Order("solicitud_number DESC").Find(&out)
	return out, res.Error
}

func (r *CreditRepository) NextSolicitudNumber(ctx context.Context) (uint64, error) {
	var max uint64
	res := r.db.WithContext(ctx).
		Model(&creditDomain.Credit{}).
		Unscoped(). // numbers of deleted credits stay burned
		Select("COALESCE(MAX(solicitud_number), 0)").
		Scan(&max)
	if res.Error != nil {
		return 0, res.Error
	}
	return max + 1, nil
}

func (r *CreditRepository) SoftDelete(ctx context.Context, c *creditDomain.Credit, deletedBy string) error {
	if err := r.db.WithContext(ctx).Model(c).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(c).Error
}

func (r *CreditRepository) AppendHistory(ctx context.Context, h *creditDomain.HistoryEntry) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *CreditRepository) ListHistory(ctx context.Context, creditRowID uint64) ([]creditDomain.HistoryEntry, error) {
	var out []creditDomain.HistoryEntry
	res := r.db.WithContext(ctx).
		Where("credit_row_id = ?", creditRowID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *CreditRepository) AppendComment(ctx context.Context, cm *creditDomain.Comment) error {
	return r.db.WithContext(ctx).Create(cm).Error
}

func (r *CreditRepository) ListComments(ctx context.Context, creditRowID uint64) ([]creditDomain.Comment, error) {
	var out []creditDomain.Comment
	res := r.db.WithContext(ctx).
		Where("credit_row_id = ?", creditRowID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *CreditRepository) AddDocument(ctx context.Context, d *creditDomain.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *CreditRepository) ListDocuments(ctx context.Context, creditRowID uint64) ([]creditDomain.Document, error) {
	var out []creditDomain.Document
	res := r.db.WithContext(ctx).
		Where("credit_row_id = ?", creditRowID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *CreditRepository) ReplaceTasks(ctx context.Context, creditRowID uint64, tasks []creditDomain.DevolucionTask) error {
	if err := r.db.WithContext(ctx).
		Where("credit_row_id = ?", creditRowID).
		Delete(&creditDomain.DevolucionTask{}).Error; err != nil {
		return err
	}
	if len(tasks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&tasks).Error
}

func (r *CreditRepository) ListTasks(ctx context.Context, creditRowID uint64) ([]creditDomain.DevolucionTask, error) {
	var out []creditDomain.DevolucionTask
	res := r.db.WithContext(ctx).
		Where("credit_row_id = ?", creditRowID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *CreditRepository) GetTaskForUpdate(ctx context.Context, creditRowID uint64, taskID string) (*creditDomain.DevolucionTask, error) {
	var out creditDomain.DevolucionTask
	res := forUpdate(r.db.WithContext(ctx)).
		Where("credit_row_id = ? AND task_id = ?", creditRowID, taskID).
		First(&out)
	return &out, res.Error
}

func (r *CreditRepository) SaveTask(ctx context.Context, t *creditDomain.DevolucionTask) error {
	return r.db.WithContext(ctx).Save(t).Error
}
