package mysql

import (
	"context"

	newsDomain "creditos-backoffice/internal/domain/news"

	"gorm.io/gorm"
)

type NewsRepository struct{ db *gorm.DB }

func NewNewsRepository(db *gorm.DB) *NewsRepository { return &NewsRepository{db: db} }

func (r *NewsRepository) Create(ctx context.Context, n *newsDomain.Item) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NewsRepository) Save(ctx context.Context, n *newsDomain.Item) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *NewsRepository) Delete(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).Where("item_id = ?", itemID).Delete(&newsDomain.Item{}).Error
}

func (r *NewsRepository) GetByItemID(ctx context.Context, itemID string) (*newsDomain.Item, error) {
	var out newsDomain.Item
	res := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&out)
	return &out, res.Error
}

func (r *NewsRepository) List(ctx context.Context) ([]newsDomain.Item, error) {
	var out []newsDomain.Item
	res := r.db.WithContext(ctx).Order("created_at DESC").Find(&out)
	return out, res.Error
}
